// Package register_repo provides PostgreSQL implementations for
// register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/registers/stock"
	"steeldesk/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

// StockRepo implements stock.Repository. Besides the movement log it
// maintains two read-models: reg_stock_balances and the denormalized
// cat_items.current_stock column the ingestion snapshot reads.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// CreateMovements batch inserts movements and applies their effect to
// the balance read-models. Call inside a posting transaction.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	q := r.builder.Insert(stockMovementsTable).Columns(
		"id", "recorder_id", "recorder_type", "recorder_version",
		"date", "record_type", "item_id", "quantity",
	)
	for _, m := range movements {
		q = q.Values(
			m.ID, m.RecorderID, m.RecorderType, m.RecorderVersion,
			m.Date, m.RecordType, m.ItemID, m.Quantity,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.querier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	for _, m := range movements {
		delta := m.Quantity
		if m.RecordType == entity.RecordTypeIssue {
			delta = delta.Neg()
		}
		if err := r.applyDelta(ctx, m.ItemID, delta); err != nil {
			return err
		}
	}

	return nil
}

// DeleteMovementsByRecorder removes movements for a document below the
// given posted version and rolls their balance effect back.
func (r *StockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	sql := `
		DELETE FROM reg_stock_movements
		WHERE recorder_id = $1 AND recorder_version < $2
		RETURNING item_id, record_type, quantity
	`

	querier := r.querier(ctx)
	rows, err := querier.Query(ctx, sql, recorderID, beforeVersion)
	if err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	type reversal struct {
		itemID     id.ID
		recordType entity.RecordType
		quantity   decimal.Decimal
	}
	var reversals []reversal
	for rows.Next() {
		var rv reversal
		if err := rows.Scan(&rv.itemID, &rv.recordType, &rv.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("scan deleted movement: %w", err)
		}
		reversals = append(reversals, rv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read deleted movements: %w", err)
	}

	for _, rv := range reversals {
		delta := rv.quantity.Neg()
		if rv.recordType == entity.RecordTypeIssue {
			delta = rv.quantity
		}
		if err := r.applyDelta(ctx, rv.itemID, delta); err != nil {
			return err
		}
	}

	return nil
}

// applyDelta upserts the balance row and syncs the item read-model.
func (r *StockRepo) applyDelta(ctx context.Context, itemID id.ID, delta decimal.Decimal) error {
	querier := r.querier(ctx)

	upsert := `
		INSERT INTO reg_stock_balances (item_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_id)
		DO UPDATE SET quantity = reg_stock_balances.quantity + $2, updated_at = now()
	`
	if _, err := querier.Exec(ctx, upsert, itemID, delta); err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}

	sync := `
		UPDATE cat_items
		SET current_stock = (SELECT quantity FROM reg_stock_balances WHERE item_id = $1)
		WHERE id = $1
	`
	if _, err := querier.Exec(ctx, sync, itemID); err != nil {
		return fmt.Errorf("sync item stock: %w", err)
	}

	return nil
}

// GetMovementsByRecorder retrieves all movements for a document.
func (r *StockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"id", "recorder_id", "recorder_type", "recorder_version",
		"date", "record_type", "item_id", "quantity",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetBalance returns current balance for an item. Missing rows read as
// zero stock.
func (r *StockRepo) GetBalance(ctx context.Context, itemID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select("item_id", "quantity", "updated_at").
		From(stockBalancesTable).
		Where(squirrel.Eq{"item_id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalanceForUpdate returns balance with a pessimistic row lock.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, itemID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	sql := `
		SELECT item_id, quantity, updated_at
		FROM reg_stock_balances
		WHERE item_id = $1
		FOR UPDATE
	`

	if err := pgxscan.Get(ctx, r.querier(ctx), &balance, sql, itemID); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return balance, fmt.Errorf("get balance for update: %w", err)
	}

	return balance, nil
}

// GetBalances returns all balances matching the filter.
func (r *StockRepo) GetBalances(ctx context.Context, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	q := r.builder.Select("item_id", "quantity", "updated_at").
		From(stockBalancesTable)

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": 0})
	}
	if len(filter.ItemIDs) > 0 {
		q = q.Where(squirrel.Eq{"item_id": filter.ItemIDs})
	}
	if filter.MaxQuantity != nil {
		q = q.Where(squirrel.LtOrEq{"quantity": *filter.MaxQuantity})
	}

	q = q.OrderBy("item_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetMovementHistory returns movement history for an item.
func (r *StockRepo) GetMovementHistory(ctx context.Context, itemID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"id", "recorder_id", "recorder_type", "recorder_version",
		"date", "record_type", "item_id", "quantity",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"item_id": itemID})

	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	q = q.OrderBy("date DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// GetTurnover calculates per-item opening, receipt, issue and closing
// quantities for a period.
func (r *StockRepo) GetTurnover(ctx context.Context, filter stock.TurnoverFilter) ([]stock.Turnover, error) {
	args := []any{filter.FromDate, filter.ToDate}
	itemCond := ""
	if filter.ItemID != nil {
		itemCond = " AND item_id = $3"
		args = append(args, *filter.ItemID)
	}

	sql := fmt.Sprintf(`
		SELECT
			item_id,
			COALESCE(SUM(CASE WHEN date < $1 AND record_type = 'receipt' THEN quantity
			                  WHEN date < $1 THEN -quantity ELSE 0 END), 0) AS opening_balance,
			COALESCE(SUM(CASE WHEN date >= $1 AND date < $2 AND record_type = 'receipt' THEN quantity ELSE 0 END), 0) AS receipt,
			COALESCE(SUM(CASE WHEN date >= $1 AND date < $2 AND record_type = 'issue' THEN quantity ELSE 0 END), 0) AS issue
		FROM reg_stock_movements
		WHERE date < $2%s
		GROUP BY item_id
		ORDER BY item_id
	`, itemCond)

	rows, err := r.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("calculate turnover: %w", err)
	}
	defer rows.Close()

	var result []stock.Turnover
	for rows.Next() {
		var t stock.Turnover
		if err := rows.Scan(&t.ItemID, &t.OpeningBalance, &t.Receipt, &t.Issue); err != nil {
			return nil, fmt.Errorf("scan turnover: %w", err)
		}
		t.ClosingBalance = t.OpeningBalance.Add(t.Receipt).Sub(t.Issue)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read turnover: %w", err)
	}

	return result, nil
}

// RecalculateBalances rebuilds the balance table from movements.
func (r *StockRepo) RecalculateBalances(ctx context.Context, itemID *id.ID) error {
	querier := r.querier(ctx)

	cond := ""
	var args []any
	if itemID != nil {
		cond = " WHERE item_id = $1"
		args = append(args, *itemID)
	}

	rebuild := fmt.Sprintf(`
		INSERT INTO reg_stock_balances (item_id, quantity, updated_at)
		SELECT item_id,
		       COALESCE(SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END), 0),
		       now()
		FROM reg_stock_movements%s
		GROUP BY item_id
		ON CONFLICT (item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
	`, cond)

	if _, err := querier.Exec(ctx, rebuild, args...); err != nil {
		return fmt.Errorf("recalculate balances: %w", err)
	}

	sync := `
		UPDATE cat_items i
		SET current_stock = COALESCE(b.quantity, 0)
		FROM reg_stock_balances b
		WHERE b.item_id = i.id
	`
	if itemID != nil {
		sync += " AND i.id = $1"
	}
	if _, err := querier.Exec(ctx, sync, args...); err != nil {
		return fmt.Errorf("sync item stock: %w", err)
	}

	return nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
