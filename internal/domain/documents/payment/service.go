package payment

import (
	"context"
	"fmt"
	"time"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/tx"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/domain/posting"
	"steeldesk/internal/domain/pricing"
	"steeldesk/pkg/logger"
	"steeldesk/pkg/numerator"
)

// NumeratorStrategy for payments. Strict: money documents must have
// gapless numbers.
const NumeratorStrategy = numerator.StrategyStrict

// Service provides business operations for payments.
type Service struct {
	repo          Repository
	ledger        *ledger.Service
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
}

// NewService creates a new payment service.
func NewService(
	repo Repository,
	ledgerSvc *ledger.Service,
	postingEngine *posting.Engine,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		ledger:        ledgerSvc,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// Create creates a payment draft.
func (s *Service) Create(ctx context.Context, doc *Payment) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.generateNumber(ctx, doc); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "payment created",
		"id", doc.ID,
		"number", doc.Number,
		"amount", doc.Amount)

	return nil
}

// GetByID retrieves a payment.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Payment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("payment", docID.String())
		}
		return nil, err
	}
	return doc, nil
}

// Update updates a payment draft.
func (s *Service) Update(ctx context.Context, doc *Payment) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Delete soft-deletes a payment. Posted payments must be unposted first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// Post writes the payment's ledger entry.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost reverses the payment's ledger entry.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Unpost(ctx, doc, updateDoc)
}

// PostAndSave creates and posts in one transaction.
func (s *Service) PostAndSave(ctx context.Context, doc *Payment) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.generateNumber(ctx, doc); err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		if doc.Version == 1 {
			return s.repo.Create(ctx, doc)
		}
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// List retrieves payments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error) {
	return s.repo.List(ctx, filter)
}

// FullAmount returns the party's current outstanding balance rounded
// down to 2 decimals, so paying "the full amount" never overshoots.
func (s *Service) FullAmount(ctx context.Context, partyID id.ID) (types.Money, error) {
	balance, err := s.ledger.GetBalance(ctx, partyID)
	if err != nil {
		return types.Zero(), err
	}
	if balance.IsNegative() {
		return types.Zero(), nil
	}
	return pricing.FullPaymentAmount(balance), nil
}

func (s *Service) generateNumber(ctx context.Context, doc *Payment) error {
	if doc.Number != "" {
		return nil
	}
	cfg := numerator.DefaultConfig("PAY")
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}
