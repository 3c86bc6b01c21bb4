package dto

import (
	"github.com/shopspring/decimal"

	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
)

// ItemResponse is the API view of an inventory item.
type ItemResponse struct {
	CatalogResponse
	Category      string          `json:"category"`
	Grade         string          `json:"grade,omitempty"`
	Size          string          `json:"size,omitempty"`
	Gauge         string          `json:"gauge,omitempty"`
	SubCategory   string          `json:"subCategory,omitempty"`
	FittingType   string          `json:"fittingType,omitempty"`
	Specification string          `json:"specification,omitempty"`
	UnitBasis     string          `json:"unitBasis"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	PurchaseRate  decimal.Decimal `json:"purchaseRate"`
	Margin        decimal.Decimal `json:"margin"`
	SellingRate   decimal.Decimal `json:"sellingRate"`
	GST           decimal.Decimal `json:"gst"`
}

// FromItem creates ItemResponse. Rates are rounded to 2 decimals.
func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		CatalogResponse: FromCatalog(it.Catalog),
		Category:        string(it.Category),
		Grade:           it.Grade,
		Size:            it.Size,
		Gauge:           it.Gauge,
		SubCategory:     it.SubCategory,
		FittingType:     it.FittingType,
		Specification:   it.Specification,
		UnitBasis:       string(it.UnitBasis),
		CurrentStock:    it.CurrentStock,
		PurchaseRate:    types.Round2(it.PurchaseRate),
		Margin:          types.Round2(it.Margin),
		SellingRate:     types.Round2(it.SellingRate()),
		GST:             it.GST,
	}
}

// CreateItemRequest for creating items. Name and unit basis are derived
// from the descriptive fields server-side.
type CreateItemRequest struct {
	Code          string          `json:"code"`
	Category      string          `json:"category" binding:"required"`
	Grade         string          `json:"grade"`
	Size          string          `json:"size"`
	Gauge         string          `json:"gauge"`
	SubCategory   string          `json:"subCategory"`
	FittingType   string          `json:"fittingType"`
	Specification string          `json:"specification"`
	PurchaseRate  decimal.Decimal `json:"purchaseRate"`
	Margin        decimal.Decimal `json:"margin"`
	GST           decimal.Decimal `json:"gst"`
}

// ToEntity converts request to a domain item.
func (r CreateItemRequest) ToEntity() *item.Item {
	it := item.New(r.Code, item.Category(r.Category))
	it.Grade = r.Grade
	it.Size = r.Size
	it.Gauge = r.Gauge
	it.SubCategory = r.SubCategory
	it.FittingType = r.FittingType
	it.Specification = r.Specification
	it.PurchaseRate = r.PurchaseRate
	it.Margin = r.Margin
	it.GST = r.GST
	it.Refresh()
	return it
}

// UpdateItemRequest for updating items. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Grade         *string          `json:"grade"`
	Size          *string          `json:"size"`
	Gauge         *string          `json:"gauge"`
	SubCategory   *string          `json:"subCategory"`
	FittingType   *string          `json:"fittingType"`
	Specification *string          `json:"specification"`
	PurchaseRate  *decimal.Decimal `json:"purchaseRate"`
	Margin        *decimal.Decimal `json:"margin"`
	GST           *decimal.Decimal `json:"gst"`
	Version       int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the changed fields to an existing item.
func (r UpdateItemRequest) ApplyTo(it *item.Item) {
	if r.Grade != nil {
		it.Grade = *r.Grade
	}
	if r.Size != nil {
		it.Size = *r.Size
	}
	if r.Gauge != nil {
		it.Gauge = *r.Gauge
	}
	if r.SubCategory != nil {
		it.SubCategory = *r.SubCategory
	}
	if r.FittingType != nil {
		it.FittingType = *r.FittingType
	}
	if r.Specification != nil {
		it.Specification = *r.Specification
	}
	if r.PurchaseRate != nil {
		it.PurchaseRate = *r.PurchaseRate
	}
	if r.Margin != nil {
		it.Margin = *r.Margin
	}
	if r.GST != nil {
		it.GST = *r.GST
	}
	it.Version = r.Version
	it.Refresh()
}
