// Package item provides the inventory Item catalog.
// Items are steel trading goods: pipes, sheets, fittings and polish material.
package item

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
)

// Category defines the item class. The category governs which descriptive
// fields apply and how quantity is measured.
type Category string

const (
	CategoryPipe    Category = "pipe"
	CategorySheet   Category = "sheet"
	CategoryFitting Category = "fitting"
	CategoryPolish  Category = "polish"
)

// UnitBasis defines how quantity is measured for an item.
type UnitBasis string

const (
	ByWeight     UnitBasis = "byWeight"     // kilograms
	ByPieceCount UnitBasis = "byPieceCount" // discrete pieces
)

// bushSubCategory is the one fitting sub-category sold by weight.
const bushSubCategory = "bush"

// Item represents an inventory item.
type Item struct {
	entity.Catalog

	// Category defines the item class
	Category Category `db:"category" json:"category"`

	// Descriptive fields; the populated subset depends on category.
	// Pipe/sheet: Grade, Size, Gauge. Fitting: SubCategory, Grade,
	// FittingType, Size. Polish: SubCategory, Specification.
	Grade         string `db:"grade" json:"grade,omitempty"`
	Size          string `db:"size" json:"size,omitempty"`
	Gauge         string `db:"gauge" json:"gauge,omitempty"`
	SubCategory   string `db:"sub_category" json:"subCategory,omitempty"`
	FittingType   string `db:"fitting_type" json:"fittingType,omitempty"`
	Specification string `db:"specification" json:"specification,omitempty"`

	// UnitBasis is derived from category (and the Bush exception)
	UnitBasis UnitBasis `db:"unit_basis" json:"unitBasis"`

	// CurrentStock in the unit basis (kg or pieces)
	CurrentStock decimal.Decimal `db:"current_stock" json:"currentStock"`

	// PurchaseRate is the last known purchase rate per unit
	PurchaseRate decimal.Decimal `db:"purchase_rate" json:"purchaseRate"`

	// Margin is an absolute currency amount added to the base rate
	// to obtain the selling price (not a percentage)
	Margin decimal.Decimal `db:"margin" json:"margin"`

	// GST percentage (e.g., 18)
	GST decimal.Decimal `db:"gst" json:"gst"`
}

// New creates a new Item. Name and unit basis are derived from
// the descriptive fields.
func New(code string, category Category) *Item {
	it := &Item{
		Catalog:      entity.NewCatalog(code, ""),
		Category:     category,
		CurrentStock: decimal.Zero,
		PurchaseRate: decimal.Zero,
		Margin:       decimal.Zero,
		GST:          decimal.Zero,
	}
	return it
}

// Refresh recomputes the derived name and unit basis from the
// descriptive fields. Call after mutating category-specific fields.
func (i *Item) Refresh() {
	i.Name = BuildName(i.Category, NameFields{
		Type:          categoryLabel(i.Category),
		Grade:         i.Grade,
		Size:          i.Size,
		Gauge:         i.Gauge,
		SubCategory:   i.SubCategory,
		FittingType:   i.FittingType,
		Specification: i.Specification,
	})
	i.UnitBasis = BasisFor(i.Category, i.SubCategory)
}

// Validate implements entity.Validatable interface.
func (i *Item) Validate(ctx context.Context) error {
	if !IsValidCategory(i.Category) {
		return apperror.NewValidation("invalid item category").
			WithDetail("field", "category").
			WithDetail("value", string(i.Category))
	}

	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if i.UnitBasis != ByWeight && i.UnitBasis != ByPieceCount {
		return apperror.NewValidation("invalid unit basis").
			WithDetail("field", "unitBasis").
			WithDetail("value", string(i.UnitBasis))
	}

	if i.CurrentStock.IsNegative() {
		return apperror.NewValidation("current stock cannot be negative").
			WithDetail("field", "currentStock")
	}

	if i.PurchaseRate.IsNegative() {
		return apperror.NewValidation("purchase rate cannot be negative").
			WithDetail("field", "purchaseRate")
	}

	if i.GST.IsNegative() {
		return apperror.NewValidation("gst cannot be negative").
			WithDetail("field", "gst")
	}

	return nil
}

// MatchKey returns the fuzzy lookup key for this item's name.
func (i *Item) MatchKey() string {
	return MatchKey(i.Name)
}

// SellingRate returns purchase rate plus absolute margin.
func (i *Item) SellingRate() decimal.Decimal {
	return i.PurchaseRate.Add(i.Margin)
}

// --- Name derivation ---

// NameFields holds the descriptive values a name is built from.
type NameFields struct {
	Type          string
	Grade         string
	Size          string
	Gauge         string
	SubCategory   string
	FittingType   string
	Specification string
}

// BuildName concatenates the non-empty descriptive fields in the fixed
// category-specific order, joined with single spaces. The result is the
// display name and the fuzzy lookup key against inventory.
func BuildName(category Category, f NameFields) string {
	var parts []string
	switch category {
	case CategoryPipe, CategorySheet:
		parts = []string{f.Type, f.Grade, f.Size, f.Gauge}
	case CategoryFitting:
		parts = []string{f.SubCategory, f.Grade, f.FittingType, f.Size, "Fitting"}
	case CategoryPolish:
		parts = []string{f.SubCategory, f.Specification}
	default:
		parts = []string{f.Type, f.Grade, f.Size}
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// BasisFor returns the quantity basis for a category.
// Pipes and sheets are weighed; fittings are counted except the
// Bush sub-category which is weighed; polish is counted.
func BasisFor(category Category, subCategory string) UnitBasis {
	switch category {
	case CategoryPipe, CategorySheet:
		return ByWeight
	case CategoryFitting:
		if strings.EqualFold(strings.TrimSpace(subCategory), bushSubCategory) {
			return ByWeight
		}
		return ByPieceCount
	default:
		return ByPieceCount
	}
}

// MatchKey normalizes a name for inventory matching: case-folded with
// all whitespace stripped.
func MatchKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCategory reports whether c is a recognized category.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryPipe, CategorySheet, CategoryFitting, CategoryPolish:
		return true
	}
	return false
}

func categoryLabel(c Category) string {
	switch c {
	case CategoryPipe:
		return "Pipe"
	case CategorySheet:
		return "Sheet"
	case CategoryFitting:
		return "Fitting"
	case CategoryPolish:
		return "Polish"
	}
	return ""
}
