package dto

import (
	"github.com/shopspring/decimal"

	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/party"
)

// PartyResponse is the API view of a customer or vendor.
type PartyResponse struct {
	CatalogResponse
	Kind           string          `json:"kind"`
	GSTIN          string          `json:"gstin,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// FromParty creates PartyResponse.
func FromParty(p *party.Party) *PartyResponse {
	return &PartyResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Kind:            string(p.Kind),
		GSTIN:           p.GSTIN,
		Phone:           p.Phone,
		Email:           p.Email,
		Address:         p.Address,
		City:            p.City,
		State:           p.State,
		OpeningBalance:  types.Round2(p.OpeningBalance),
	}
}

// CreatePartyRequest for creating parties.
type CreatePartyRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required"`
	GSTIN          string          `json:"gstin"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// ToEntity converts request to a domain party.
func (r CreatePartyRequest) ToEntity() *party.Party {
	p := party.New(r.Code, r.Name, party.Kind(r.Kind))
	p.GSTIN = r.GSTIN
	p.Phone = r.Phone
	p.Email = r.Email
	p.Address = r.Address
	p.City = r.City
	p.State = r.State
	p.OpeningBalance = r.OpeningBalance
	return p
}

// UpdatePartyRequest for updating parties.
type UpdatePartyRequest struct {
	Name           *string          `json:"name"`
	GSTIN          *string          `json:"gstin"`
	Phone          *string          `json:"phone"`
	Email          *string          `json:"email"`
	Address        *string          `json:"address"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	Version        int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the changed fields to an existing party.
func (r UpdatePartyRequest) ApplyTo(p *party.Party) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.GSTIN != nil {
		p.GSTIN = *r.GSTIN
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.City != nil {
		p.City = *r.City
	}
	if r.State != nil {
		p.State = *r.State
	}
	if r.OpeningBalance != nil {
		p.OpeningBalance = *r.OpeningBalance
	}
	p.Version = r.Version
}
