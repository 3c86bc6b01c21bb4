// Package report_repo provides PostgreSQL implementations for report
// queries.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"steeldesk/internal/domain/reports"
	"steeldesk/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

func (r *ReportRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// GetStockReport returns the current stock position per item.
func (r *ReportRepo) GetStockReport(ctx context.Context, excludeZero bool) ([]reports.StockRow, error) {
	query := `
		SELECT
			i.id AS item_id,
			i.code,
			i.name,
			i.category,
			i.unit_basis,
			COALESCE(b.quantity, 0) AS quantity
		FROM cat_items i
		LEFT JOIN reg_stock_balances b ON b.item_id = i.id
		WHERE i.deletion_mark = false
	`
	if excludeZero {
		query += " AND COALESCE(b.quantity, 0) <> 0"
	}
	query += " ORDER BY i.category, i.name"

	var items []reports.StockRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query); err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}

	return items, nil
}

// GetSalesSummary aggregates posted sale orders for a period.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (reports.SalesSummary, error) {
	summary := reports.SalesSummary{FromDate: from, ToDate: to}

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(taxable_amount), 0),
			COALESCE(SUM(total_tax), 0),
			COALESCE(SUM(grand_total), 0),
			COALESCE(SUM(amount_paid), 0),
			COALESCE(SUM(balance_amount), 0)
		FROM doc_sale_orders
		WHERE posted = true
		  AND deletion_mark = false
		  AND date >= $1 AND date < $2
	`

	err := r.querier(ctx).QueryRow(ctx, query, from, to).Scan(
		&summary.OrderCount,
		&summary.TaxableAmount,
		&summary.TotalTax,
		&summary.GrandTotal,
		&summary.AmountPaid,
		&summary.Outstanding,
	)
	if err != nil && err != pgx.ErrNoRows {
		return summary, fmt.Errorf("sales summary: %w", err)
	}

	return summary, nil
}

// GetDocumentJournal returns the cross-document journal: purchases,
// sales and payments in one dated stream.
func (r *ReportRepo) GetDocumentJournal(ctx context.Context, filter reports.JournalFilter) ([]reports.JournalRow, error) {
	query := `
		SELECT * FROM (
			SELECT d.id AS document_id, 'PurchaseOrder' AS document_type,
			       d.number, d.date, p.name AS party_name, d.grand_total AS amount, d.posted
			FROM doc_purchase_orders d
			JOIN cat_parties p ON p.id = d.vendor_id
			WHERE d.deletion_mark = false
			UNION ALL
			SELECT d.id, 'SaleOrder', d.number, d.date, p.name, d.grand_total, d.posted
			FROM doc_sale_orders d
			JOIN cat_parties p ON p.id = d.customer_id
			WHERE d.deletion_mark = false
			UNION ALL
			SELECT d.id, 'Payment', d.number, d.date, p.name, d.amount, d.posted
			FROM doc_payments d
			JOIN cat_parties p ON p.id = d.party_id
			WHERE d.deletion_mark = false
		) j
		WHERE 1=1
	`

	var args []any
	argIdx := 1

	if filter.DocumentType != "" {
		query += fmt.Sprintf(" AND j.document_type = $%d", argIdx)
		args = append(args, filter.DocumentType)
		argIdx++
	}
	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND j.date >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND j.date <= $%d", argIdx)
		args = append(args, *filter.ToDate)
		argIdx++
	}

	query += " ORDER BY j.date DESC, j.number DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var rows []reports.JournalRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("document journal: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
