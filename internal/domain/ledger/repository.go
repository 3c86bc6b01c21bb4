// Package ledger provides the party ledger register: running
// debit/credit entries per customer or vendor.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
)

// Repository defines operations for the party ledger.
type Repository interface {
	// CreateEntries batch inserts ledger entries (used during posting)
	CreateEntries(ctx context.Context, entries []entity.LedgerEntry) error

	// DeleteEntriesByRecorder removes entries written by a document
	// below the given posted version (used during unposting)
	DeleteEntriesByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetEntriesByParty returns entries for one party, oldest first
	GetEntriesByParty(ctx context.Context, partyID id.ID, filter EntryFilter) ([]entity.LedgerEntry, error)

	// GetBalance returns debits minus credits for a party
	// (excluding the opening balance, which lives on the party record)
	GetBalance(ctx context.Context, partyID id.ID) (decimal.Decimal, error)

	// GetOutstanding returns net balances for all parties of a kind
	GetOutstanding(ctx context.Context, kind string) ([]PartyBalance, error)
}

// EntryFilter for ledger statement queries.
type EntryFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// PartyBalance is one row of an outstanding report.
type PartyBalance struct {
	PartyID   id.ID           `db:"party_id" json:"partyId"`
	PartyName string          `db:"party_name" json:"partyName"`
	Debit     decimal.Decimal `db:"debit" json:"debit"`
	Credit    decimal.Decimal `db:"credit" json:"credit"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
}
