package readstore

//go:generate mockgen -source=customer.go -destination=../../../tests/mock/readstore/customer.go -package=readstoremock

import (
	"context"

	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"
	"teetime/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerReadQueries interface {
	GetCustomerByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Customers, error)
}

type CustomerReadStore struct {
	queries CustomerReadQueries
	db      postgres.DBTX
}

func NewCustomerReadStore(queries CustomerReadQueries, db postgres.DBTX) *CustomerReadStore {
	return &CustomerReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CustomerReadStore) CustomerByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	row, err := r.queries.GetCustomerByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}

	return &shared.CustomerSnapshot{
		ID:             row.ID,
		Email:          row.Email,
		LoyaltySegment: row.LoyaltySegment,
	}, nil
}

// PricingReadStore serves the query side's pricing lookups outside any
// transaction.
type PricingReadStore struct {
	*TeeTimeReadStore
	*CustomerReadStore
}

func NewPricingReadStore(queries *postgres.Queries, db postgres.DBTX) *PricingReadStore {
	return &PricingReadStore{
		TeeTimeReadStore:  NewTeeTimeReadStore(queries, db),
		CustomerReadStore: NewCustomerReadStore(queries, db),
	}
}
