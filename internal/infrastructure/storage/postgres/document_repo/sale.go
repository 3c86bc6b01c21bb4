package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/documents/sale"
	"steeldesk/internal/infrastructure/storage/postgres"
)

const (
	saleOrdersTable = "doc_sale_orders"
	saleLinesTable  = "doc_sale_order_lines"
)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.SaleOrder]
}

// NewSaleRepo creates a new sale order repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*sale.SaleOrder](
			txManager,
			saleOrdersTable,
			postgres.ExtractDBColumns[sale.SaleOrder](),
			func() *sale.SaleOrder { return &sale.SaleOrder{} },
		),
	}
}

// GetLines retrieves the table part of a sale order.
func (r *SaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.Line, error) {
	q := r.Builder().
		Select(lineCols...).
		From(saleLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *SaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + saleLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(saleLinesTable).
		Columns(append([]string{"document_id"}, lineCols...)...)

	for _, line := range lines {
		q = q.Values(
			docID, line.LineID, line.LineNo, line.ItemID, line.Category, line.Name,
			line.QuantityBasis, line.Quantity, line.BaseRate, line.Margin, line.TaxRate,
			line.SellingPrice, line.LineAmount, line.TaxAmount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves sale orders with filtering.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.SaleOrder], error) {
	q := r.baseSelect()

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	return r.listWith(ctx, q, filter.ListFilter)
}

// Ensure interface compliance.
var _ sale.Repository = (*SaleRepo)(nil)
