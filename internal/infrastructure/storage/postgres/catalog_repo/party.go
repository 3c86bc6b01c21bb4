package catalog_repo

import (
	"context"

	"steeldesk/internal/domain"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/filter"
	"steeldesk/internal/infrastructure/storage/postgres"
)

const partyTable = "cat_parties"

// PartyRepo implements party.Repository.
type PartyRepo struct {
	*BaseCatalogRepo[*party.Party]
}

// NewPartyRepo creates a new party repository.
func NewPartyRepo(txManager *postgres.TxManager) *PartyRepo {
	return &PartyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*party.Party](
			txManager,
			partyTable,
			postgres.ExtractDBColumns[party.Party](),
			func() *party.Party { return &party.Party{} },
		),
	}
}

// ListByKind returns parties of one kind with filtering.
func (r *PartyRepo) ListByKind(ctx context.Context, kind party.Kind, f domain.ListFilter) (domain.ListResult[*party.Party], error) {
	f.AdvancedFilters = append(f.AdvancedFilters, filter.Item{
		Field:    "kind",
		Operator: filter.Equal,
		Value:    string(kind),
	})
	return r.List(ctx, f)
}
