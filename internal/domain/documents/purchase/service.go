package purchase

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

// NumeratorStrategy for purchase orders. Strict: accounting documents
// must have gapless numbers.
const NumeratorStrategy = numerator.StrategyStrict

// Service provides business operations for purchase orders.
type Service struct {
	repo          Repository
	items         *item.Service
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*PurchaseOrder]
}

// NewService creates a new purchase order service.
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
		hooks:         domain.NewHookRegistry[*PurchaseOrder](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*PurchaseOrder] {
	return s.hooks
}

// Create creates a new purchase order draft.
func (s *Service) Create(ctx context.Context, doc *PurchaseOrder) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
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

	logger.Info(ctx, "purchase order created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase order", docID.String())
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

// Update updates a purchase order draft.
func (s *Service) Update(ctx context.Context, doc *PurchaseOrder) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
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

// Delete soft-deletes a purchase order. Posted documents must be
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

// Post records the document's movements: stock receipts per line and
// vendor ledger entries. Lines are resolved against inventory first,
// creating items that do not exist yet.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.resolveLines(ctx, doc); err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
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
func (s *Service) PostAndSave(ctx context.Context, doc *PurchaseOrder) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.generateNumber(ctx, doc); err != nil {
		return err
	}

	if err := s.resolveLines(ctx, doc); err != nil {
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

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) generateNumber(ctx context.Context, doc *PurchaseOrder) error {
	if doc.Number != "" {
		return nil
	}
	cfg := numerator.DefaultConfig("PO")
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}

// resolveLines binds each line to an inventory item by its name,
// creating missing items. The item's last purchase rate and tax rate
// follow the document.
func (s *Service) resolveLines(ctx context.Context, doc *PurchaseOrder) error {
	for i := range doc.Lines {
		line := &doc.Lines[i]
		if !id.IsNil(line.ItemID) {
			continue
		}

		existing, err := s.items.FindByName(ctx, line.Name)
		if err == nil {
			line.ItemID = existing.ID

			existing.PurchaseRate = line.BaseRate
			existing.GST = line.TaxRate
			if err := s.items.Update(ctx, existing); err != nil {
				return fmt.Errorf("update item %s: %w", existing.Name, err)
			}
			continue
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		created := item.New("", line.Category)
		created.Grade = line.Fields.Grade
		created.Size = line.Fields.Size
		created.Gauge = line.Fields.Gauge
		created.SubCategory = line.Fields.SubCategory
		created.FittingType = line.Fields.FittingType
		created.Specification = line.Fields.Specification
		created.PurchaseRate = line.BaseRate
		created.GST = line.TaxRate
		created.Refresh()

		if err := s.items.Create(ctx, created); err != nil {
			return fmt.Errorf("create item %s: %w", line.Name, err)
		}
		line.ItemID = created.ID

		logger.Info(ctx, "created inventory item from purchase line",
			"item_id", created.ID,
			"name", created.Name)
	}
	return nil
}
