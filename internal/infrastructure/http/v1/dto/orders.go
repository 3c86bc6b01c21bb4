package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/documents/purchase"
	"steeldesk/internal/domain/documents/sale"
	"steeldesk/internal/domain/pricing"
)

// --- Lines ---

// LineRequest is one order line as submitted by the client. Either an
// item reference or descriptive fields; the name is derived server-side
// when absent.
type LineRequest struct {
	ItemID        string          `json:"itemId"`
	Category      string          `json:"category" binding:"required"`
	Name          string          `json:"name"`
	Grade         string          `json:"grade"`
	Size          string          `json:"size"`
	Gauge         string          `json:"gauge"`
	SubCategory   string          `json:"subCategory"`
	FittingType   string          `json:"fittingType"`
	Specification string          `json:"specification"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	BaseRate      decimal.Decimal `json:"baseRate"`
	Margin        decimal.Decimal `json:"margin"`
	TaxRate       decimal.Decimal `json:"taxRate"`
}

// ToLineItem converts the request line to a priceable line item.
func (r LineRequest) ToLineItem() pricing.LineItem {
	category := item.Category(r.Category)
	fields := item.NameFields{
		Grade:         r.Grade,
		Size:          r.Size,
		Gauge:         r.Gauge,
		SubCategory:   r.SubCategory,
		FittingType:   r.FittingType,
		Specification: r.Specification,
	}

	name := r.Name
	if name == "" {
		name = item.BuildName(category, fields)
	}

	li := pricing.LineItem{
		Category:      category,
		Name:          name,
		Fields:        fields,
		QuantityBasis: item.BasisFor(category, r.SubCategory),
		Quantity:      r.Quantity,
		BaseRate:      r.BaseRate,
		Margin:        r.Margin,
		TaxRate:       r.TaxRate,
	}

	if r.ItemID != "" {
		if parsed, err := id.Parse(r.ItemID); err == nil {
			li.ItemID = parsed
		}
	}
	return li
}

// LineResponse is one order line with derived amounts, rounded to 2dp.
type LineResponse struct {
	LineID        string          `json:"lineId,omitempty"`
	LineNo        int             `json:"lineNo"`
	ItemID        string          `json:"itemId,omitempty"`
	Category      string          `json:"category"`
	Name          string          `json:"name"`
	QuantityBasis string          `json:"quantityBasis"`
	Quantity      decimal.Decimal `json:"quantity"`
	BaseRate      decimal.Decimal `json:"baseRate"`
	Margin        decimal.Decimal `json:"margin"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	LineAmount    decimal.Decimal `json:"lineAmount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
}

func fromLineItem(lineID id.ID, lineNo int, li pricing.LineItem) LineResponse {
	resp := LineResponse{
		LineNo:        lineNo,
		Category:      string(li.Category),
		Name:          li.Name,
		QuantityBasis: string(li.QuantityBasis),
		Quantity:      li.Quantity,
		BaseRate:      types.Round2(li.BaseRate),
		Margin:        types.Round2(li.Margin),
		TaxRate:       li.TaxRate,
		SellingPrice:  types.Round2(li.SellingPrice),
		LineAmount:    types.Round2(li.LineAmount),
		TaxAmount:     types.Round2(li.TaxAmount),
	}
	if !id.IsNil(lineID) {
		resp.LineID = lineID.String()
	}
	if !id.IsNil(li.ItemID) {
		resp.ItemID = li.ItemID.String()
	}
	return resp
}

// TotalsResponse is the order totals block, rounded to 2dp.
type TotalsResponse struct {
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FreightAmount  decimal.Decimal `json:"freightAmount"`
	TCSAmount      decimal.Decimal `json:"tcsAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
}

func fromTotals(t pricing.OrderTotals) TotalsResponse {
	return TotalsResponse{
		TaxableAmount:  types.Round2(t.TaxableAmount),
		TotalTax:       types.Round2(t.TotalTax),
		DiscountAmount: types.Round2(t.DiscountAmount),
		FreightAmount:  types.Round2(t.FreightAmount),
		TCSAmount:      types.Round2(t.TCSAmount),
		GrandTotal:     types.Round2(t.GrandTotal),
		AmountPaid:     types.Round2(t.AmountPaid),
		BalanceAmount:  types.Round2(t.BalanceAmount),
	}
}

// --- Purchase orders ---

// CreatePurchaseOrderRequest for creating purchase orders.
type CreatePurchaseOrderRequest struct {
	VendorID            string          `json:"vendorId" binding:"required"`
	Date                *time.Time      `json:"date"`
	VendorInvoiceNumber string          `json:"vendorInvoiceNumber"`
	VendorInvoiceDate   *time.Time      `json:"vendorInvoiceDate"`
	DiscountPercent     decimal.Decimal `json:"discountPercent"`
	FreightAmount       decimal.Decimal `json:"freightAmount"`
	TCSAmount           decimal.Decimal `json:"tcsAmount"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	Comment             string          `json:"comment"`
	Lines               []LineRequest   `json:"lines" binding:"required"`
	PostImmediately     bool            `json:"postImmediately"`
}

// ToEntity converts the request to a purchase order with priced lines.
func (r CreatePurchaseOrderRequest) ToEntity() (*purchase.PurchaseOrder, error) {
	vendorID, _ := id.Parse(r.VendorID)

	doc := purchase.New(vendorID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.VendorInvoiceNumber = r.VendorInvoiceNumber
	doc.VendorInvoiceDate = r.VendorInvoiceDate
	doc.DiscountPercent = r.DiscountPercent
	doc.FreightAmount = r.FreightAmount
	doc.TCSAmount = r.TCSAmount
	doc.AmountPaid = r.AmountPaid
	doc.Comment = r.Comment

	for _, lr := range r.Lines {
		if err := doc.AddLine(lr.ToLineItem()); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// UpdatePurchaseOrderRequest for updating purchase order drafts.
// Lines replace the whole table part.
type UpdatePurchaseOrderRequest struct {
	Date                *time.Time       `json:"date"`
	VendorInvoiceNumber *string          `json:"vendorInvoiceNumber"`
	VendorInvoiceDate   *time.Time       `json:"vendorInvoiceDate"`
	DiscountPercent     *decimal.Decimal `json:"discountPercent"`
	FreightAmount       *decimal.Decimal `json:"freightAmount"`
	TCSAmount           *decimal.Decimal `json:"tcsAmount"`
	AmountPaid          *decimal.Decimal `json:"amountPaid"`
	Comment             *string          `json:"comment"`
	Lines               []LineRequest    `json:"lines"`
	Version             int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the changed fields to an existing draft.
func (r UpdatePurchaseOrderRequest) ApplyTo(doc *purchase.PurchaseOrder) error {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.VendorInvoiceNumber != nil {
		doc.VendorInvoiceNumber = *r.VendorInvoiceNumber
	}
	if r.VendorInvoiceDate != nil {
		doc.VendorInvoiceDate = r.VendorInvoiceDate
	}
	if r.DiscountPercent != nil {
		doc.DiscountPercent = *r.DiscountPercent
	}
	if r.FreightAmount != nil {
		doc.FreightAmount = *r.FreightAmount
	}
	if r.TCSAmount != nil {
		doc.TCSAmount = *r.TCSAmount
	}
	if r.AmountPaid != nil {
		doc.AmountPaid = *r.AmountPaid
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version

	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, lr := range r.Lines {
			if err := doc.AddLine(lr.ToLineItem()); err != nil {
				return err
			}
		}
	}
	return doc.RecalculateTotals()
}

// PurchaseOrderResponse is the API view of a purchase order.
type PurchaseOrderResponse struct {
	ID                  string         `json:"id"`
	Number              string         `json:"number"`
	Date                time.Time      `json:"date"`
	Posted              bool           `json:"posted"`
	Version             int            `json:"version"`
	VendorID            string         `json:"vendorId"`
	VendorInvoiceNumber string         `json:"vendorInvoiceNumber,omitempty"`
	VendorInvoiceDate   *time.Time     `json:"vendorInvoiceDate,omitempty"`
	Comment             string         `json:"comment,omitempty"`
	Lines               []LineResponse `json:"lines"`
	Totals              TotalsResponse `json:"totals"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// FromPurchaseOrder creates PurchaseOrderResponse.
func FromPurchaseOrder(doc *purchase.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]LineResponse, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = fromLineItem(l.LineID, l.LineNo, l.LineItem)
	}

	return &PurchaseOrderResponse{
		ID:                  doc.ID.String(),
		Number:              doc.Number,
		Date:                doc.Date,
		Posted:              doc.Posted,
		Version:             doc.Version,
		VendorID:            doc.VendorID.String(),
		VendorInvoiceNumber: doc.VendorInvoiceNumber,
		VendorInvoiceDate:   doc.VendorInvoiceDate,
		Comment:             doc.Comment,
		Lines:               lines,
		Totals:              fromTotals(doc.Totals),
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
	}
}

// --- Sale orders ---

// CreateSaleOrderRequest for creating sale orders.
type CreateSaleOrderRequest struct {
	CustomerID      string          `json:"customerId" binding:"required"`
	Date            *time.Time      `json:"date"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	Comment         string          `json:"comment"`
	Lines           []LineRequest   `json:"lines" binding:"required"`
	PostImmediately bool            `json:"postImmediately"`
}

// ToEntity converts the request to a sale order with priced lines.
func (r CreateSaleOrderRequest) ToEntity() (*sale.SaleOrder, error) {
	customerID, _ := id.Parse(r.CustomerID)

	doc := sale.New(customerID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.DiscountPercent = r.DiscountPercent
	doc.AmountPaid = r.AmountPaid
	doc.Comment = r.Comment

	for _, lr := range r.Lines {
		if err := doc.AddLine(lr.ToLineItem()); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// UpdateSaleOrderRequest for updating sale order drafts.
type UpdateSaleOrderRequest struct {
	Date            *time.Time       `json:"date"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	AmountPaid      *decimal.Decimal `json:"amountPaid"`
	Comment         *string          `json:"comment"`
	Lines           []LineRequest    `json:"lines"`
	Version         int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the changed fields to an existing draft.
func (r UpdateSaleOrderRequest) ApplyTo(doc *sale.SaleOrder) error {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.DiscountPercent != nil {
		doc.DiscountPercent = *r.DiscountPercent
	}
	if r.AmountPaid != nil {
		doc.AmountPaid = *r.AmountPaid
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version

	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, lr := range r.Lines {
			if err := doc.AddLine(lr.ToLineItem()); err != nil {
				return err
			}
		}
	}
	return doc.RecalculateTotals()
}

// SaleOrderResponse is the API view of a sale order.
type SaleOrderResponse struct {
	ID         string         `json:"id"`
	Number     string         `json:"number"`
	Date       time.Time      `json:"date"`
	Posted     bool           `json:"posted"`
	Version    int            `json:"version"`
	CustomerID string         `json:"customerId"`
	Comment    string         `json:"comment,omitempty"`
	Lines      []LineResponse `json:"lines"`
	Totals     TotalsResponse `json:"totals"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// FromSaleOrder creates SaleOrderResponse.
func FromSaleOrder(doc *sale.SaleOrder) *SaleOrderResponse {
	lines := make([]LineResponse, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = fromLineItem(l.LineID, l.LineNo, l.LineItem)
	}

	return &SaleOrderResponse{
		ID:         doc.ID.String(),
		Number:     doc.Number,
		Date:       doc.Date,
		Posted:     doc.Posted,
		Version:    doc.Version,
		CustomerID: doc.CustomerID.String(),
		Comment:    doc.Comment,
		Lines:      lines,
		Totals:     fromTotals(doc.Totals),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
