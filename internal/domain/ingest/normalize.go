package ingest

import (
	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/pricing"
)

// Row is one data row of a parsed spreadsheet, keyed by header.
type Row map[string]string

// cell returns the value for a template column, matching the key the
// same way headers are matched (case and whitespace insensitive).
func (r Row) cell(column string) string {
	want := headerKey(column)
	for k, v := range r {
		if headerKey(k) == want {
			return v
		}
	}
	return ""
}

// NormalizeRow maps one spreadsheet row into a priced line item.
//
// The display name is built from the category-specific descriptive
// fields. Quantity basis follows the category rule (pipe/sheet and Bush
// fittings by weight, the rest by piece count), falling back to the
// populated quantity column when the preferred one is empty. Numeric
// cells coerce to zero when blank or unparseable; negative values
// reject the row.
func NormalizeRow(row Row, category item.Category, side Side) (pricing.LineItem, error) {
	fields := item.NameFields{
		Type:          row.cell(ColType),
		Grade:         row.cell(ColGrade),
		Size:          row.cell(ColSize),
		Gauge:         row.cell(ColGauge),
		SubCategory:   row.cell(ColSubCategory),
		Specification: row.cell(ColSpecification),
	}
	if category == item.CategoryFitting {
		// The fitting template's Type column is the fitting type,
		// not the category prefix.
		fields.FittingType = fields.Type
		fields.Type = ""
	}

	name := item.BuildName(category, fields)
	if name == "" {
		name = row.cell(ColName)
	}
	if name == "" {
		return pricing.LineItem{}, apperror.NewValidation("row has no descriptive fields").
			WithDetail("category", string(category))
	}

	pieces := types.ParseNumberOrZero(row.cell(ColPieces))
	weight := types.ParseNumberOrZero(row.cell(ColWeight))
	rate := types.ParseNumberOrZero(row.cell(ColRate))
	gst := types.ParseNumberOrZero(row.cell(ColGST))

	margin := types.Zero()
	if side == SideSale {
		margin = types.ParseNumberOrZero(row.cell(ColMargin))
	}

	if pieces.IsNegative() || weight.IsNegative() {
		return pricing.LineItem{}, apperror.NewValidation("quantity cannot be negative").
			WithDetail("item", name)
	}
	if rate.IsNegative() {
		return pricing.LineItem{}, apperror.NewValidation("rate cannot be negative").
			WithDetail("item", name)
	}
	if margin.IsNegative() {
		return pricing.LineItem{}, apperror.NewValidation("margin cannot be negative").
			WithDetail("item", name)
	}
	if gst.IsNegative() {
		return pricing.LineItem{}, apperror.NewValidation("gst cannot be negative").
			WithDetail("item", name)
	}

	basis := item.BasisFor(category, fields.SubCategory)
	// Fall back to whichever quantity column is actually populated.
	if basis == item.ByWeight && weight.IsZero() && pieces.IsPositive() {
		basis = item.ByPieceCount
	} else if basis == item.ByPieceCount && pieces.IsZero() && weight.IsPositive() {
		basis = item.ByWeight
	}

	quantity := pieces
	if basis == item.ByWeight {
		quantity = weight
	}

	li := pricing.LineItem{
		Category:      category,
		Name:          name,
		Fields:        fields,
		QuantityBasis: basis,
		Quantity:      quantity,
		BaseRate:      rate,
		Margin:        margin,
		TaxRate:       gst,
	}
	if err := pricing.Price(&li); err != nil {
		return pricing.LineItem{}, err
	}
	return li, nil
}
