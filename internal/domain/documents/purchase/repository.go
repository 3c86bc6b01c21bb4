package purchase

import (
	"context"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
)

// Repository defines persistence operations for purchase orders.
type Repository interface {
	Create(ctx context.Context, doc *PurchaseOrder) error
	Update(ctx context.Context, doc *PurchaseOrder) error
	GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error)
	Delete(ctx context.Context, docID id.ID) error

	// SaveLines replaces the table part of a document
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)
}

// ListFilter narrows purchase order list queries.
type ListFilter struct {
	domain.ListFilter

	VendorID *id.ID
	Posted   *bool
}
