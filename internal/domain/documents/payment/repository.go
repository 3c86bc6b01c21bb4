package payment

import (
	"context"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
)

// Repository defines persistence operations for payments.
type Repository interface {
	Create(ctx context.Context, doc *Payment) error
	Update(ctx context.Context, doc *Payment) error
	GetByID(ctx context.Context, docID id.ID) (*Payment, error)
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error)
}

// ListFilter narrows payment list queries.
type ListFilter struct {
	domain.ListFilter

	PartyID *id.ID
	OrderID *id.ID
	Posted  *bool
}
