package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/documents/payment"
)

// CreatePaymentRequest for creating payments.
type CreatePaymentRequest struct {
	PartyID         string          `json:"partyId" binding:"required"`
	PartyKind       string          `json:"partyKind" binding:"required"`
	Mode            string          `json:"mode" binding:"required"`
	Reference       string          `json:"reference"`
	OrderID         string          `json:"orderId"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            *time.Time      `json:"date"`
	Comment         string          `json:"comment"`
	PostImmediately bool            `json:"postImmediately"`
}

// ToEntity converts request to a domain payment.
func (r CreatePaymentRequest) ToEntity() *payment.Payment {
	partyID, _ := id.Parse(r.PartyID)

	doc := payment.New(partyID, party.Kind(r.PartyKind), payment.Mode(r.Mode), r.Amount)
	doc.Reference = r.Reference
	doc.Comment = r.Comment
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.OrderID != "" {
		if parsed, err := id.Parse(r.OrderID); err == nil {
			doc.OrderID = &parsed
		}
	}
	return doc
}

// UpdatePaymentRequest for updating payment drafts.
type UpdatePaymentRequest struct {
	Mode      *string          `json:"mode"`
	Reference *string          `json:"reference"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      *time.Time       `json:"date"`
	Comment   *string          `json:"comment"`
	Version   int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the changed fields to an existing draft.
func (r UpdatePaymentRequest) ApplyTo(doc *payment.Payment) {
	if r.Mode != nil {
		doc.Mode = payment.Mode(*r.Mode)
	}
	if r.Reference != nil {
		doc.Reference = *r.Reference
	}
	if r.Amount != nil {
		doc.Amount = *r.Amount
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	doc.Version = r.Version
}

// PaymentResponse is the API view of a payment.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Date      time.Time       `json:"date"`
	Posted    bool            `json:"posted"`
	Version   int             `json:"version"`
	PartyID   string          `json:"partyId"`
	PartyKind string          `json:"partyKind"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference,omitempty"`
	OrderID   string          `json:"orderId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FromPayment creates PaymentResponse.
func FromPayment(doc *payment.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:        doc.ID.String(),
		Number:    doc.Number,
		Date:      doc.Date,
		Posted:    doc.Posted,
		Version:   doc.Version,
		PartyID:   doc.PartyID.String(),
		PartyKind: string(doc.PartyKind),
		Mode:      string(doc.Mode),
		Reference: doc.Reference,
		Amount:    types.Round2(doc.Amount),
		Comment:   doc.Comment,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.OrderID != nil {
		resp.OrderID = doc.OrderID.String()
	}
	return resp
}

// FullAmountResponse is the "pay full amount" helper result.
type FullAmountResponse struct {
	PartyID string          `json:"partyId"`
	Amount  decimal.Decimal `json:"amount"`
}
