// Package reports provides read-only analytics over documents and
// registers: stock position, outstanding balances, sales summary and
// the document journal.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/ledger"
)

// StockRow is one line of the stock position report.
type StockRow struct {
	ItemID    id.ID           `db:"item_id" json:"itemId"`
	Code      string          `db:"code" json:"code"`
	Name      string          `db:"name" json:"name"`
	Category  string          `db:"category" json:"category"`
	UnitBasis string          `db:"unit_basis" json:"unitBasis"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
}

// SalesSummary aggregates posted sale orders for a period.
type SalesSummary struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	OrderCount    int64           `json:"orderCount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// JournalRow is one line of the document journal.
type JournalRow struct {
	DocumentID   id.ID           `db:"document_id" json:"documentId"`
	DocumentType string          `db:"document_type" json:"documentType"`
	Number       string          `db:"number" json:"number"`
	Date         time.Time       `db:"date" json:"date"`
	PartyName    string          `db:"party_name" json:"partyName"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Posted       bool            `db:"posted" json:"posted"`
}

// JournalFilter narrows the document journal.
type JournalFilter struct {
	DocumentType string
	FromDate     *time.Time
	ToDate       *time.Time
	Limit        int
	Offset       int
}

// Repository defines the report queries.
type Repository interface {
	GetStockReport(ctx context.Context, excludeZero bool) ([]StockRow, error)
	GetSalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error)
	GetDocumentJournal(ctx context.Context, filter JournalFilter) ([]JournalRow, error)
}

// Service composes report queries with the ledger register.
type Service struct {
	repo      Repository
	ledgerSvc *ledger.Service
}

// NewService creates a new reports service.
func NewService(repo Repository, ledgerSvc *ledger.Service) *Service {
	return &Service{
		repo:      repo,
		ledgerSvc: ledgerSvc,
	}
}

// StockReport returns the current stock position per item.
func (s *Service) StockReport(ctx context.Context, excludeZero bool) ([]StockRow, error) {
	return s.repo.GetStockReport(ctx, excludeZero)
}

// SalesSummaryReport aggregates posted sales for the period.
func (s *Service) SalesSummaryReport(ctx context.Context, from, to time.Time) (SalesSummary, error) {
	return s.repo.GetSalesSummary(ctx, from, to)
}

// Receivables returns outstanding customer balances.
func (s *Service) Receivables(ctx context.Context) ([]ledger.PartyBalance, error) {
	return s.ledgerSvc.GetOutstanding(ctx, party.KindCustomer)
}

// Payables returns outstanding vendor balances.
func (s *Service) Payables(ctx context.Context) ([]ledger.PartyBalance, error) {
	return s.ledgerSvc.GetOutstanding(ctx, party.KindVendor)
}

// DocumentJournal returns the cross-document journal.
func (s *Service) DocumentJournal(ctx context.Context, filter JournalFilter) ([]JournalRow, error) {
	return s.repo.GetDocumentJournal(ctx, filter)
}
