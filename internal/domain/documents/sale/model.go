// Package sale provides the SaleOrder document.
// Records goods sold to a customer: posting checks stock under row
// locks, writes issue movements and debits the customer ledger.
package sale

import (
	"context"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/posting"
	"steeldesk/internal/domain/pricing"
	"steeldesk/internal/domain/registers/stock"
)

// DocumentType is the recorder type written to register rows.
const DocumentType = "SaleOrder"

// SaleOrder represents a sale to a customer.
type SaleOrder struct {
	entity.Document

	// CustomerID references the customer party
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Order-level adjustments (sales carry no freight/tcs)
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	AmountPaid      types.Money `db:"amount_paid" json:"amountPaid"`

	// Totals (derived from lines and adjustments)
	Totals pricing.OrderTotals `db:"-" json:"totals"`

	// Persisted total columns
	TaxableAmount types.Money `db:"taxable_amount" json:"-"`
	TotalTax      types.Money `db:"total_tax" json:"-"`
	GrandTotal    types.Money `db:"grand_total" json:"-"`
	BalanceAmount types.Money `db:"balance_amount" json:"-"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one sale order line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	pricing.LineItem
}

// New creates a new sale order for a customer.
func New(customerID id.ID) *SaleOrder {
	return &SaleOrder{
		Document:        entity.NewDocument(),
		CustomerID:      customerID,
		DiscountPercent: types.Zero(),
		AmountPaid:      types.Zero(),
		Lines:           make([]Line, 0),
	}
}

// AddLine prices the line item, appends it and recalculates totals.
func (s *SaleOrder) AddLine(li pricing.LineItem) error {
	if err := pricing.Price(&li); err != nil {
		return err
	}

	s.Lines = append(s.Lines, Line{
		LineID:   id.New(),
		LineNo:   len(s.Lines) + 1,
		LineItem: li,
	})
	return s.RecalculateTotals()
}

// RecalculateTotals re-derives order totals from lines and adjustments.
func (s *SaleOrder) RecalculateTotals() error {
	items := make([]pricing.LineItem, len(s.Lines))
	for i, l := range s.Lines {
		items[i] = l.LineItem
	}

	totals, err := pricing.Aggregate(items, pricing.Adjustments{
		DiscountPercent: s.DiscountPercent,
		AmountPaid:      s.AmountPaid,
	})
	if err != nil {
		return err
	}

	s.Totals = totals
	s.TaxableAmount = totals.TaxableAmount
	s.TotalTax = totals.TotalTax
	s.GrandTotal = totals.GrandTotal
	s.BalanceAmount = totals.BalanceAmount
	return nil
}

// Validate implements entity.Validatable.
func (s *SaleOrder) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ItemID) {
			return apperror.NewValidation("line is not matched to an inventory item").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1).
				WithDetail("name", line.Name)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return s.RecalculateTotals()
}

// GetDocumentType returns the document type name.
func (s *SaleOrder) GetDocumentType() string {
	return DocumentType
}

// GenerateMovements creates register movements for this document:
// a locked stock check and an issue movement per line, plus customer
// ledger entries for the grand total and any amount paid.
func (s *SaleOrder) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := s.PostedVersion + 1

	for _, line := range s.Lines {
		movements.Reserve(stock.Reservation{
			ItemID:      line.ItemID,
			ItemName:    line.Name,
			RequiredQty: line.Quantity,
		})

		movements.AddStock(entity.NewStockMovement(
			s.ID,
			DocumentType,
			newVersion,
			s.Date,
			entity.RecordTypeIssue,
			line.ItemID,
			line.Quantity,
		))
	}

	movements.AddLedger(entity.NewLedgerEntry(
		s.ID,
		DocumentType,
		newVersion,
		s.Date,
		s.CustomerID,
		entity.LedgerDebit,
		s.GrandTotal,
		"Sale "+s.Number,
	))

	if s.AmountPaid.IsPositive() {
		movements.AddLedger(entity.NewLedgerEntry(
			s.ID,
			DocumentType,
			newVersion,
			s.Date,
			s.CustomerID,
			entity.LedgerCredit,
			s.AmountPaid,
			"Received with sale "+s.Number,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*SaleOrder)(nil)
