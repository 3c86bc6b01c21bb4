package item

import (
	"context"
	"fmt"
	"time"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/tx"
	"steeldesk/internal/domain"
	"steeldesk/pkg/numerator"
)

// Service provides business logic for the Item catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Item service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and name uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, it *Item) error {
	it.Refresh()

	if it.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ITM"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		it.Code = code
	}

	if exists, _ := s.checkNameExists(ctx, it.MatchKey(), it.ID); exists {
		return apperror.NewConflict("item with this name already exists").
			WithDetail("name", it.Name)
	}

	return nil
}

// prepareForUpdate re-derives name/basis and re-checks uniqueness.
func (s *Service) prepareForUpdate(ctx context.Context, it *Item) error {
	it.Refresh()

	if exists, _ := s.checkNameExists(ctx, it.MatchKey(), it.ID); exists {
		return apperror.NewConflict("item with this name already exists").
			WithDetail("name", it.Name)
	}

	return nil
}

// --- Entity-specific methods ---

// FindByName retrieves an item by display name (fuzzy, case and
// whitespace insensitive).
func (s *Service) FindByName(ctx context.Context, name string) (*Item, error) {
	it, err := s.repo.FindByMatchKey(ctx, MatchKey(name))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, err
	}
	return it, nil
}

// Snapshot returns the current inventory snapshot for a category,
// used by sale-side ingestion for name matching and advisory stock checks.
func (s *Service) Snapshot(ctx context.Context, category Category) ([]*Item, error) {
	if !IsValidCategory(category) {
		return nil, apperror.NewValidation("invalid item category").
			WithDetail("category", string(category))
	}
	return s.repo.ActiveByCategory(ctx, category)
}

// FindLowStock retrieves items with stock at or below the threshold.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.FindLowStock(ctx, filter)
}

func (s *Service) checkNameExists(ctx context.Context, key string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByMatchKey(ctx, key)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
