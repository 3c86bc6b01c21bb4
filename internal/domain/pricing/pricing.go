// Package pricing derives line and order amounts for purchase and sale
// orders. All arithmetic is pure decimal math; amounts keep full precision
// and are rounded to 2 decimals only at serialization boundaries.
package pricing

import (
	"github.com/shopspring/decimal"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
)

// LineItem is one resolved row of a purchase or sale.
type LineItem struct {
	// ItemID is set when the line is matched against inventory
	// (sale-side ingestion); nil UUID for unmatched purchase lines.
	ItemID id.ID `json:"itemId,omitempty"`

	Category item.Category `json:"category"`

	// Name is the derived display name, also the inventory lookup key
	Name string `json:"name"`

	// Fields holds the descriptive values the name was built from.
	// Purchase ingestion uses them to create missing inventory items.
	Fields item.NameFields `json:"fields,omitempty"`

	QuantityBasis item.UnitBasis `json:"quantityBasis"`

	// Quantity in pieces or kilograms depending on basis
	Quantity types.Money `json:"quantity"`

	// BaseRate is currency per unit
	BaseRate types.Money `json:"baseRate"`

	// Margin is an absolute currency amount per unit, added to BaseRate.
	// Not a percentage.
	Margin types.Money `json:"margin"`

	// TaxRate percentage (e.g., 18)
	TaxRate types.Money `json:"taxRate"`

	// Derived by Price; always recomputed together.
	SellingPrice types.Money `json:"sellingPrice"`
	LineAmount   types.Money `json:"lineAmount"`
	TaxAmount    types.Money `json:"taxAmount"`
}

// Price recomputes SellingPrice, LineAmount and TaxAmount from BaseRate,
// Margin, Quantity and TaxRate. The three derived fields are always set
// together so a caller never observes an inconsistent intermediate state.
//
//	sellingPrice = baseRate + margin
//	lineAmount   = quantity * sellingPrice
//	taxAmount    = lineAmount * taxRate / 100
func Price(li *LineItem) error {
	if li.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity").
			WithDetail("item", li.Name)
	}
	if li.BaseRate.IsNegative() {
		return apperror.NewValidation("rate cannot be negative").
			WithDetail("field", "baseRate").
			WithDetail("item", li.Name)
	}
	if li.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "taxRate").
			WithDetail("item", li.Name)
	}

	selling := li.BaseRate.Add(li.Margin)
	if selling.IsNegative() {
		return apperror.NewValidation("selling price cannot be negative").
			WithDetail("field", "margin").
			WithDetail("item", li.Name)
	}

	li.SellingPrice = selling
	li.LineAmount = li.Quantity.Mul(selling)
	li.TaxAmount = types.Percent(li.LineAmount, li.TaxRate)
	return nil
}

// Adjustments holds order-level charges applied during aggregation.
type Adjustments struct {
	// DiscountPercent is applied to the taxable amount
	DiscountPercent types.Money `json:"discountPercent"`

	// FreightAmount and TCSAmount are flat additive charges (purchases)
	FreightAmount types.Money `json:"freightAmount"`
	TCSAmount     types.Money `json:"tcsAmount"`

	// AmountPaid must not exceed the grand total
	AmountPaid types.Money `json:"amountPaid"`
}

// OrderTotals is the aggregate over a set of line items.
type OrderTotals struct {
	TaxableAmount  types.Money `json:"taxableAmount"`
	TotalTax       types.Money `json:"totalTax"`
	DiscountAmount types.Money `json:"discountAmount"`
	FreightAmount  types.Money `json:"freightAmount"`
	TCSAmount      types.Money `json:"tcsAmount"`
	GrandTotal     types.Money `json:"grandTotal"`
	AmountPaid     types.Money `json:"amountPaid"`
	BalanceAmount  types.Money `json:"balanceAmount"`
}

// Aggregate folds line items into order totals.
//
//	taxableAmount  = sum(lineAmount)
//	discountAmount = taxableAmount * discountPercent / 100
//	grandTotal     = taxableAmount - discountAmount + totalTax + freight + tcs
//	balanceAmount  = grandTotal - amountPaid
//
// Malformed lines (negative amounts) and overpayment reject the whole
// aggregation; there is no partial-sum result.
func Aggregate(items []LineItem, adj Adjustments) (OrderTotals, error) {
	taxable := decimal.Zero
	totalTax := decimal.Zero

	for i := range items {
		li := &items[i]
		if li.LineAmount.IsNegative() || li.TaxAmount.IsNegative() {
			return OrderTotals{}, apperror.NewValidation("line amount cannot be negative").
				WithDetail("item", li.Name)
		}
		taxable = taxable.Add(li.LineAmount)
		totalTax = totalTax.Add(li.TaxAmount)
	}

	if adj.DiscountPercent.IsNegative() {
		return OrderTotals{}, apperror.NewValidation("discount percent cannot be negative").
			WithDetail("field", "discountPercent")
	}
	if adj.FreightAmount.IsNegative() || adj.TCSAmount.IsNegative() {
		return OrderTotals{}, apperror.NewValidation("freight and tcs cannot be negative")
	}
	if adj.AmountPaid.IsNegative() {
		return OrderTotals{}, apperror.NewValidation("amount paid cannot be negative").
			WithDetail("field", "amountPaid")
	}

	discount := types.Percent(taxable, adj.DiscountPercent)
	grand := taxable.Sub(discount).Add(totalTax).Add(adj.FreightAmount).Add(adj.TCSAmount)

	if adj.AmountPaid.GreaterThan(grand) {
		return OrderTotals{}, apperror.NewOverpayment(
			adj.AmountPaid.String(), grand.String())
	}

	return OrderTotals{
		TaxableAmount:  taxable,
		TotalTax:       totalTax,
		DiscountAmount: discount,
		FreightAmount:  adj.FreightAmount,
		TCSAmount:      adj.TCSAmount,
		GrandTotal:     grand,
		AmountPaid:     adj.AmountPaid,
		BalanceAmount:  grand.Sub(adj.AmountPaid),
	}, nil
}

// FullPaymentAmount returns the amount for the "pay full amount" helper.
// Rounded down to 2 decimals so the payment never exceeds the balance.
func FullPaymentAmount(balance types.Money) types.Money {
	return types.RoundDown2(balance)
}
