package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/ledger"
)

// LedgerEntryResponse is one statement row, amounts rounded to 2dp.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	RecorderID   string          `json:"recorderId"`
	RecorderType string          `json:"recorderType"`
	Side         string          `json:"side"`
	Amount       decimal.Decimal `json:"amount"`
	Narration    string          `json:"narration,omitempty"`
}

// StatementResponse is a party statement with a running balance.
type StatementResponse struct {
	Party          *PartyResponse        `json:"party"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
}

// FromStatement creates StatementResponse.
func FromStatement(st ledger.Statement) StatementResponse {
	entries := make([]LedgerEntryResponse, len(st.Entries))
	for i, e := range st.Entries {
		entries[i] = fromLedgerEntry(e)
	}
	return StatementResponse{
		Party:          FromParty(st.Party),
		OpeningBalance: types.Round2(st.OpeningBalance),
		Entries:        entries,
		ClosingBalance: types.Round2(st.ClosingBalance),
	}
}

func fromLedgerEntry(e entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           e.ID.String(),
		Date:         e.Date,
		RecorderID:   e.RecorderID.String(),
		RecorderType: e.RecorderType,
		Side:         string(e.Side),
		Amount:       types.Round2(e.Amount),
		Narration:    e.Narration,
	}
}

// BalanceResponse is a single party balance.
type BalanceResponse struct {
	PartyID string          `json:"partyId"`
	Balance decimal.Decimal `json:"balance"`
}
