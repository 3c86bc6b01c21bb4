package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/id"
)

// RecordType defines the direction of a register movement.
type RecordType string

const (
	RecordTypeReceipt RecordType = "receipt" // stock in (purchase)
	RecordTypeIssue   RecordType = "issue"   // stock out (sale)
)

// StockMovement is a single row in the stock accumulation register.
// Movements are always written by a recorder document and reconciled
// by (recorder_id, recorder_version) on unpost.
type StockMovement struct {
	ID              id.ID           `db:"id" json:"id"`
	RecorderID      id.ID           `db:"recorder_id" json:"recorderId"`
	RecorderType    string          `db:"recorder_type" json:"recorderType"`
	RecorderVersion int             `db:"recorder_version" json:"recorderVersion"`
	Date            time.Time       `db:"date" json:"date"`
	RecordType      RecordType      `db:"record_type" json:"recordType"`
	ItemID          id.ID           `db:"item_id" json:"itemId"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
}

// NewStockMovement creates a movement row for a recorder document.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	recorderVersion int,
	date time.Time,
	recordType RecordType,
	itemID id.ID,
	quantity decimal.Decimal,
) StockMovement {
	return StockMovement{
		ID:              id.New(),
		RecorderID:      recorderID,
		RecorderType:    recorderType,
		RecorderVersion: recorderVersion,
		Date:            date,
		RecordType:      recordType,
		ItemID:          itemID,
		Quantity:        quantity,
	}
}

// StockBalance is the materialized balance per item.
type StockBalance struct {
	ItemID    id.ID           `db:"item_id" json:"itemId"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// LedgerSide defines whether a ledger entry is a debit or a credit.
type LedgerSide string

const (
	LedgerDebit  LedgerSide = "debit"
	LedgerCredit LedgerSide = "credit"
)

// LedgerEntry is a single row in a party (customer/vendor) ledger.
type LedgerEntry struct {
	ID              id.ID           `db:"id" json:"id"`
	RecorderID      id.ID           `db:"recorder_id" json:"recorderId"`
	RecorderType    string          `db:"recorder_type" json:"recorderType"`
	RecorderVersion int             `db:"recorder_version" json:"recorderVersion"`
	Date            time.Time       `db:"date" json:"date"`
	PartyID         id.ID           `db:"party_id" json:"partyId"`
	Side            LedgerSide      `db:"side" json:"side"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Narration       string          `db:"narration" json:"narration,omitempty"`
}

// NewLedgerEntry creates a ledger row for a recorder document.
func NewLedgerEntry(
	recorderID id.ID,
	recorderType string,
	recorderVersion int,
	date time.Time,
	partyID id.ID,
	side LedgerSide,
	amount decimal.Decimal,
	narration string,
) LedgerEntry {
	return LedgerEntry{
		ID:              id.New(),
		RecorderID:      recorderID,
		RecorderType:    recorderType,
		RecorderVersion: recorderVersion,
		Date:            date,
		PartyID:         partyID,
		Side:            side,
		Amount:          amount,
		Narration:       narration,
	}
}
