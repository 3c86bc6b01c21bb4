package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/pkg/logger"
)

// Service provides business operations for party ledgers.
// Transactions are managed by the caller (the posting document service).
type Service struct {
	repo    Repository
	parties party.Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository, parties party.Repository) *Service {
	return &Service{
		repo:    repo,
		parties: parties,
	}
}

// RecordEntries writes ledger entries from a document posting.
func (s *Service) RecordEntries(ctx context.Context, entries []entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	for i, e := range entries {
		if id.IsNil(e.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: recorder_id is required", i))
		}
		if id.IsNil(e.PartyID) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: party_id is required", i))
		}
		if e.Amount.IsNegative() {
			return apperror.NewValidation(fmt.Sprintf("entry %d: amount cannot be negative", i))
		}
		if e.Side != entity.LedgerDebit && e.Side != entity.LedgerCredit {
			return apperror.NewValidation(fmt.Sprintf("entry %d: invalid side", i))
		}
	}

	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return fmt.Errorf("create entries: %w", err)
	}

	logger.Info(ctx, "recorded ledger entries",
		"count", len(entries),
		"recorder_id", entries[0].RecorderID,
	)

	return nil
}

// ReverseEntries removes entries for a document (used during unposting).
func (s *Service) ReverseEntries(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteEntriesByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}

	logger.Info(ctx, "reversed ledger entries",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// Statement is a party statement with a running balance.
type Statement struct {
	Party          *party.Party         `json:"party"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Entries        []entity.LedgerEntry `json:"entries"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// GetStatement returns the ledger statement for a party.
// The closing balance includes the party's opening balance:
// debits increase what the party owes us, credits decrease it.
func (s *Service) GetStatement(ctx context.Context, partyID id.ID, filter EntryFilter) (Statement, error) {
	p, err := s.parties.GetByID(ctx, partyID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Statement{}, apperror.NewNotFound("party", partyID.String())
		}
		return Statement{}, err
	}

	entries, err := s.repo.GetEntriesByParty(ctx, partyID, filter)
	if err != nil {
		return Statement{}, fmt.Errorf("get entries: %w", err)
	}

	balance, err := s.repo.GetBalance(ctx, partyID)
	if err != nil {
		return Statement{}, fmt.Errorf("get balance: %w", err)
	}

	return Statement{
		Party:          p,
		OpeningBalance: p.OpeningBalance,
		Entries:        entries,
		ClosingBalance: p.OpeningBalance.Add(balance),
	}, nil
}

// GetBalance returns the current net balance for a party including
// the opening balance.
func (s *Service) GetBalance(ctx context.Context, partyID id.ID) (decimal.Decimal, error) {
	p, err := s.parties.GetByID(ctx, partyID)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := s.repo.GetBalance(ctx, partyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return p.OpeningBalance.Add(balance), nil
}

// GetOutstanding returns receivables (customers) or payables (vendors).
func (s *Service) GetOutstanding(ctx context.Context, kind party.Kind) ([]PartyBalance, error) {
	return s.repo.GetOutstanding(ctx, string(kind))
}
