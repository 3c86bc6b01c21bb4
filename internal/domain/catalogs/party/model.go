// Package party provides the Party catalog: customers and vendors.
package party

import (
	"context"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
)

// Kind distinguishes customers from vendors.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
)

// Party represents a customer or vendor.
type Party struct {
	entity.Catalog

	// Kind is customer or vendor
	Kind Kind `db:"kind" json:"kind"`

	// GSTIN is the GST registration number
	GSTIN string `db:"gstin" json:"gstin,omitempty"`

	// Contact details
	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
	City    string `db:"city" json:"city,omitempty"`
	State   string `db:"state" json:"state,omitempty"`

	// OpeningBalance is the ledger balance carried in at onboarding.
	// Positive means the party owes us (customer) or we owe them (vendor).
	OpeningBalance decimal.Decimal `db:"opening_balance" json:"openingBalance"`
}

// New creates a new Party with required fields.
func New(code, name string, kind Kind) *Party {
	return &Party{
		Catalog:        entity.NewCatalog(code, name),
		Kind:           kind,
		OpeningBalance: decimal.Zero,
	}
}

// Validate implements entity.Validatable interface.
func (p *Party) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Kind != KindCustomer && p.Kind != KindVendor {
		return apperror.NewValidation("invalid party kind").
			WithDetail("field", "kind").
			WithDetail("value", string(p.Kind))
	}

	// GSTIN is 15 characters when present
	if p.GSTIN != "" && len(p.GSTIN) != 15 {
		return apperror.NewValidation("gstin must be 15 characters").
			WithDetail("field", "gstin").
			WithDetail("value", p.GSTIN)
	}

	return nil
}

// IsCustomer returns true for customer parties.
func (p *Party) IsCustomer() bool {
	return p.Kind == KindCustomer
}
