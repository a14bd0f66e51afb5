package readstore

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/readstore/idempotency.go -package=readstoremock

import (
	"context"

	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"
	"teetime/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.GetIdempotencyKeyParams) (postgres.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	db      postgres.DBTX
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, db postgres.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		db:      db,
	}
}

// Get returns expired keys as well; the caller decides whether to claim them.
func (r *IdempotencyReadStore) Get(ctx context.Context, key, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	params := postgres.GetIdempotencyKeyParams{
		Key:        key,
		CustomerID: customerID,
	}

	row, err := r.queries.GetIdempotencyKey(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		CustomerID:          row.CustomerID,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
