package party

import (
	"context"
	"fmt"
	"time"

	"steeldesk/internal/core/tx"
	"steeldesk/internal/domain"
	"steeldesk/pkg/numerator"
)

// Service provides business logic for the Party catalog.
type Service struct {
	*domain.CatalogService[*Party]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Party service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Party]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "party",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code when not provided.
// Customers get CUS- codes, vendors VEN-.
func (s *Service) prepareForCreate(ctx context.Context, p *Party) error {
	if p.Code != "" {
		return nil
	}

	prefix := "CUS"
	if p.Kind == KindVendor {
		prefix = "VEN"
	}
	code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig(prefix), nil, time.Now())
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	p.Code = code
	return nil
}

// ListByKind returns customers or vendors with filtering.
func (s *Service) ListByKind(ctx context.Context, kind Kind, filter domain.ListFilter) (domain.ListResult[*Party], error) {
	return s.repo.ListByKind(ctx, kind, filter)
}
