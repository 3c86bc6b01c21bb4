package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/documents/purchase"
	"steeldesk/internal/infrastructure/storage/postgres"
)

const (
	purchaseOrdersTable = "doc_purchase_orders"
	purchaseLinesTable  = "doc_purchase_order_lines"
)

// lineCols are the persisted line columns shared by purchase and sale
// line tables. The descriptive name fields are not stored per line;
// they only exist during ingestion.
var lineCols = []string{
	"line_id", "line_no", "item_id", "category", "name",
	"quantity_basis", "quantity", "base_rate", "margin", "tax_rate",
	"selling_price", "line_amount", "tax_amount",
}

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.PurchaseOrder]
}

// NewPurchaseRepo creates a new purchase order repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase.PurchaseOrder](
			txManager,
			purchaseOrdersTable,
			postgres.ExtractDBColumns[purchase.PurchaseOrder](),
			func() *purchase.PurchaseOrder { return &purchase.PurchaseOrder{} },
		),
	}
}

// GetLines retrieves the table part of a purchase order.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	q := r.Builder().
		Select(lineCols...).
		From(purchaseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part (delete existing + insert new).
func (r *PurchaseRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + purchaseLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseLinesTable).
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

// List retrieves purchase orders with filtering.
func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.PurchaseOrder], error) {
	q := r.baseSelect()

	if filter.VendorID != nil {
		q = q.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}
	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	return r.listWith(ctx, q, filter.ListFilter)
}

// Ensure interface compliance.
var _ purchase.Repository = (*PurchaseRepo)(nil)
