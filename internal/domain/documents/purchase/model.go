// Package purchase provides the PurchaseOrder document.
// Records goods bought from a vendor: posting adds stock receipts and
// credits the vendor ledger.
package purchase

import (
	"context"
	"time"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/posting"
	"steeldesk/internal/domain/pricing"
)

// DocumentType is the recorder type written to register rows.
const DocumentType = "PurchaseOrder"

// PurchaseOrder represents a purchase from a vendor.
type PurchaseOrder struct {
	entity.Document

	// VendorID references the vendor party
	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// VendorInvoiceNumber is the vendor's own bill reference
	VendorInvoiceNumber string     `db:"vendor_invoice_number" json:"vendorInvoiceNumber,omitempty"`
	VendorInvoiceDate   *time.Time `db:"vendor_invoice_date" json:"vendorInvoiceDate,omitempty"`

	// Order-level adjustments
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	FreightAmount   types.Money `db:"freight_amount" json:"freightAmount"`
	TCSAmount       types.Money `db:"tcs_amount" json:"tcsAmount"`
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

// Line is one purchase order line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	pricing.LineItem
}

// New creates a new purchase order for a vendor.
func New(vendorID id.ID) *PurchaseOrder {
	return &PurchaseOrder{
		Document:        entity.NewDocument(),
		VendorID:        vendorID,
		DiscountPercent: types.Zero(),
		FreightAmount:   types.Zero(),
		TCSAmount:       types.Zero(),
		AmountPaid:      types.Zero(),
		Lines:           make([]Line, 0),
	}
}

// AddLine prices the line item, appends it and recalculates totals.
func (p *PurchaseOrder) AddLine(li pricing.LineItem) error {
	if err := pricing.Price(&li); err != nil {
		return err
	}

	p.Lines = append(p.Lines, Line{
		LineID:   id.New(),
		LineNo:   len(p.Lines) + 1,
		LineItem: li,
	})
	return p.RecalculateTotals()
}

// RecalculateTotals re-derives order totals from lines and adjustments.
func (p *PurchaseOrder) RecalculateTotals() error {
	items := make([]pricing.LineItem, len(p.Lines))
	for i, l := range p.Lines {
		items[i] = l.LineItem
	}

	totals, err := pricing.Aggregate(items, pricing.Adjustments{
		DiscountPercent: p.DiscountPercent,
		FreightAmount:   p.FreightAmount,
		TCSAmount:       p.TCSAmount,
		AmountPaid:      p.AmountPaid,
	})
	if err != nil {
		return err
	}

	p.Totals = totals
	p.TaxableAmount = totals.TaxableAmount
	p.TotalTax = totals.TotalTax
	p.GrandTotal = totals.GrandTotal
	p.BalanceAmount = totals.BalanceAmount
	return nil
}

// Validate implements entity.Validatable.
func (p *PurchaseOrder) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range p.Lines {
		if line.Name == "" {
			return apperror.NewValidation("line name is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return p.RecalculateTotals()
}

// GetDocumentType returns the document type name.
func (p *PurchaseOrder) GetDocumentType() string {
	return DocumentType
}

// GenerateMovements creates register movements for this document:
// a stock receipt per line and a vendor credit for the grand total.
// Lines must be resolved to inventory items before posting.
func (p *PurchaseOrder) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := p.PostedVersion + 1

	for i, line := range p.Lines {
		if id.IsNil(line.ItemID) {
			return nil, apperror.NewValidation("line is not resolved to an item").
				WithDetail("lineNo", i+1).
				WithDetail("name", line.Name)
		}

		movements.AddStock(entity.NewStockMovement(
			p.ID,
			DocumentType,
			newVersion,
			p.Date,
			entity.RecordTypeReceipt,
			line.ItemID,
			line.Quantity,
		))
	}

	movements.AddLedger(entity.NewLedgerEntry(
		p.ID,
		DocumentType,
		newVersion,
		p.Date,
		p.VendorID,
		entity.LedgerCredit,
		p.GrandTotal,
		"Purchase "+p.Number,
	))

	if p.AmountPaid.IsPositive() {
		movements.AddLedger(entity.NewLedgerEntry(
			p.ID,
			DocumentType,
			newVersion,
			p.Date,
			p.VendorID,
			entity.LedgerDebit,
			p.AmountPaid,
			"Paid with purchase "+p.Number,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*PurchaseOrder)(nil)
