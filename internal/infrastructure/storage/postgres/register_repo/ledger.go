package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/infrastructure/storage/postgres"
)

const ledgerEntriesTable = "reg_ledger_entries"

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger register repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *LedgerRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// CreateEntries batch inserts ledger entries.
func (r *LedgerRepo) CreateEntries(ctx context.Context, entries []entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	q := r.builder.Insert(ledgerEntriesTable).Columns(
		"id", "recorder_id", "recorder_type", "recorder_version",
		"date", "party_id", "side", "amount", "narration",
	)
	for _, e := range entries {
		q = q.Values(
			e.ID, e.RecorderID, e.RecorderType, e.RecorderVersion,
			e.Date, e.PartyID, e.Side, e.Amount, e.Narration,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert ledger entries: %w", err)
	}

	return nil
}

// DeleteEntriesByRecorder removes entries written by a document below
// the given posted version.
func (r *LedgerRepo) DeleteEntriesByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	q := r.builder.Delete(ledgerEntriesTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		Where(squirrel.Lt{"recorder_version": beforeVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete ledger entries: %w", err)
	}

	return nil
}

// GetEntriesByParty returns entries for one party, oldest first.
func (r *LedgerRepo) GetEntriesByParty(ctx context.Context, partyID id.ID, filter ledger.EntryFilter) ([]entity.LedgerEntry, error) {
	q := r.builder.Select(
		"id", "recorder_id", "recorder_type", "recorder_version",
		"date", "party_id", "side", "amount", "narration",
	).From(ledgerEntriesTable).
		Where(squirrel.Eq{"party_id": partyID})

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	q = q.OrderBy("date ASC")

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

	var entries []entity.LedgerEntry
	if err := pgxscan.Select(ctx, r.querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}

	return entries, nil
}

// GetBalance returns debits minus credits for a party.
func (r *LedgerRepo) GetBalance(ctx context.Context, partyID id.ID) (decimal.Decimal, error) {
	sql := `
		SELECT COALESCE(
			SUM(CASE WHEN side = 'debit' THEN amount ELSE -amount END),
			0
		)
		FROM reg_ledger_entries
		WHERE party_id = $1
	`

	var balance decimal.Decimal
	if err := r.querier(ctx).QueryRow(ctx, sql, partyID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("get ledger balance: %w", err)
	}

	return balance, nil
}

// GetOutstanding returns net balances for all parties of a kind.
// The party opening balance is folded in so the report matches
// statement closing balances.
func (r *LedgerRepo) GetOutstanding(ctx context.Context, kind string) ([]ledger.PartyBalance, error) {
	sql := `
		SELECT
			p.id AS party_id,
			p.name AS party_name,
			COALESCE(SUM(CASE WHEN e.side = 'debit' THEN e.amount ELSE 0 END), 0) AS debit,
			COALESCE(SUM(CASE WHEN e.side = 'credit' THEN e.amount ELSE 0 END), 0) AS credit,
			p.opening_balance
				+ COALESCE(SUM(CASE WHEN e.side = 'debit' THEN e.amount ELSE -e.amount END), 0) AS balance
		FROM cat_parties p
		LEFT JOIN reg_ledger_entries e ON e.party_id = p.id
		WHERE p.kind = $1 AND p.deletion_mark = false
		GROUP BY p.id, p.name, p.opening_balance
		HAVING p.opening_balance
			+ COALESCE(SUM(CASE WHEN e.side = 'debit' THEN e.amount ELSE -e.amount END), 0) <> 0
		ORDER BY p.name
	`

	var balances []ledger.PartyBalance
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, sql, kind); err != nil {
		return nil, fmt.Errorf("select outstanding: %w", err)
	}

	return balances, nil
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)
