package sale

import (
	"context"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
)

// Repository defines persistence operations for sale orders.
type Repository interface {
	Create(ctx context.Context, doc *SaleOrder) error
	Update(ctx context.Context, doc *SaleOrder) error
	GetByID(ctx context.Context, docID id.ID) (*SaleOrder, error)
	Delete(ctx context.Context, docID id.ID) error

	// SaveLines replaces the table part of a document
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleOrder], error)
}

// ListFilter narrows sale order list queries.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Posted     *bool
}
