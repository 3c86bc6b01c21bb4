// Package payment provides the Payment document.
// Records money received from a customer or paid to a vendor; posting
// writes the matching ledger entry.
package payment

import (
	"context"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/posting"
)

// DocumentType is the recorder type written to register rows.
const DocumentType = "Payment"

// Mode is the payment instrument.
type Mode string

const (
	ModeCash   Mode = "cash"
	ModeBank   Mode = "bank"
	ModeUPI    Mode = "upi"
	ModeCheque Mode = "cheque"
)

// Payment represents a single payment against a party.
type Payment struct {
	entity.Document

	// PartyID references the customer or vendor
	PartyID id.ID `db:"party_id" json:"partyId"`

	// PartyKind decides the ledger side: a customer payment credits
	// the customer, a vendor payment debits the vendor.
	PartyKind party.Kind `db:"party_kind" json:"partyKind"`

	// Mode is the payment instrument
	Mode Mode `db:"mode" json:"mode"`

	// Reference is a cheque/UTR/UPI reference
	Reference string `db:"reference" json:"reference,omitempty"`

	// OrderID optionally links the payment to an order document
	OrderID *id.ID `db:"order_id" json:"orderId,omitempty"`

	// Amount paid
	Amount types.Money `db:"amount" json:"amount"`
}

// New creates a new payment.
func New(partyID id.ID, kind party.Kind, mode Mode, amount types.Money) *Payment {
	return &Payment{
		Document:  entity.NewDocument(),
		PartyID:   partyID,
		PartyKind: kind,
		Mode:      mode,
		Amount:    amount,
	}
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}

	if p.PartyKind != party.KindCustomer && p.PartyKind != party.KindVendor {
		return apperror.NewValidation("invalid party kind").
			WithDetail("field", "partyKind").
			WithDetail("value", string(p.PartyKind))
	}

	switch p.Mode {
	case ModeCash, ModeBank, ModeUPI, ModeCheque:
	default:
		return apperror.NewValidation("invalid payment mode").
			WithDetail("field", "mode").
			WithDetail("value", string(p.Mode))
	}

	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}

// GetDocumentType returns the document type name.
func (p *Payment) GetDocumentType() string {
	return DocumentType
}

// GenerateMovements writes one ledger entry: credit for a customer
// receipt, debit for a vendor payment.
func (p *Payment) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	side := entity.LedgerCredit
	narration := "Payment received " + p.Number
	if p.PartyKind == party.KindVendor {
		side = entity.LedgerDebit
		narration = "Payment made " + p.Number
	}

	movements.AddLedger(entity.NewLedgerEntry(
		p.ID,
		DocumentType,
		p.PostedVersion+1,
		p.Date,
		p.PartyID,
		side,
		p.Amount,
		narration,
	))

	return movements, nil
}

var _ posting.Postable = (*Payment)(nil)
