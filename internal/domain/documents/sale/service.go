package sale

import (
	"context"
	"fmt"
	"time"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/tx"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/posting"
	"steeldesk/pkg/logger"
	"steeldesk/pkg/numerator"
)

// NumeratorStrategy for sale orders. Strict: accounting documents
// must have gapless numbers.
const NumeratorStrategy = numerator.StrategyStrict

// Service provides business operations for sale orders.
type Service struct {
	repo          Repository
	items         *item.Service
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*SaleOrder]
}

// NewService creates a new sale order service.
func NewService(
	repo Repository,
	items *item.Service,
	postingEngine *posting.Engine,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		items:         items,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*SaleOrder](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*SaleOrder] {
	return s.hooks
}

// Create creates a new sale order draft.
func (s *Service) Create(ctx context.Context, doc *SaleOrder) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := s.matchLines(ctx, doc); err != nil {
		return err
	}

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
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "sale order created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a sale order with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*SaleOrder, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("sale order", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	if err := doc.RecalculateTotals(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update updates a sale order draft.
func (s *Service) Update(ctx context.Context, doc *SaleOrder) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := s.matchLines(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a sale order. Posted documents must be
// unposted first.
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

// Post records the document's movements. Stock availability is checked
// inside the transaction with row locks; any check done at upload time
// was advisory only.
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

// Unpost reverses the document's movements.
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

// PostAndSave creates (or updates) and posts in one transaction.
func (s *Service) PostAndSave(ctx context.Context, doc *SaleOrder) error {
	if err := s.matchLines(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.generateNumber(ctx, doc); err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		if doc.Version == 1 {
			if err := s.repo.Create(ctx, doc); err != nil {
				return err
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// List retrieves sale orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleOrder], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) generateNumber(ctx context.Context, doc *SaleOrder) error {
	if doc.Number != "" {
		return nil
	}
	cfg := numerator.DefaultConfig("SO")
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}

// matchLines binds unresolved lines to inventory items by name.
// A sale line that matches nothing is an error: a sale cannot invent
// inventory the way a purchase can.
func (s *Service) matchLines(ctx context.Context, doc *SaleOrder) error {
	for i := range doc.Lines {
		line := &doc.Lines[i]
		if !id.IsNil(line.ItemID) {
			continue
		}

		matched, err := s.items.FindByName(ctx, line.Name)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewBusinessRule(
					apperror.CodeItemNotFound,
					fmt.Sprintf("no inventory item matches %q", line.Name),
				).WithDetail("lineNo", i+1)
			}
			return err
		}
		line.ItemID = matched.ID
	}
	return nil
}
