package party

import (
	"context"

	"steeldesk/internal/domain"
)

// Repository defines persistence operations for Party catalog.
type Repository interface {
	domain.CatalogRepository[*Party]

	// ListByKind returns parties of one kind with filtering.
	ListByKind(ctx context.Context, kind Kind, filter domain.ListFilter) (domain.ListResult[*Party], error)
}
