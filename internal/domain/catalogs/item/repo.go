package item

import (
	"context"

	"steeldesk/internal/domain"
)

// Repository defines persistence operations for Item catalog.
type Repository interface {
	domain.CatalogRepository[*Item]

	// FindByMatchKey retrieves an item by its normalized name key.
	FindByMatchKey(ctx context.Context, key string) (*Item, error)

	// ActiveByCategory returns all non-deleted items of a category.
	// Used as the inventory snapshot for sale-side ingestion.
	ActiveByCategory(ctx context.Context, category Category) ([]*Item, error)

	// FindLowStock retrieves items with stock at or below the threshold.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Item], error)
}
