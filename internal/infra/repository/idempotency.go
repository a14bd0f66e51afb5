package repository

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/repository/idempotency.go -package=repositorymock

import (
	"context"
	"time"

	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db postgres.DBTX, arg postgres.UpdateIdempotencyKeyCompletedParams) error
	ClaimExpiredIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.ClaimExpiredIdempotencyKeyParams) (int64, error)
	ReleaseIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.GetIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db postgres.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      postgres.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db postgres.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := postgres.TryInsertIdempotencyKeyParams{
		Key:         key,
		CustomerID:  customerID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	inserted, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return inserted == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, responseBodyHash string, resultReservationID uuid.UUID) error {
	params := postgres.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		CustomerID:          customerID,
		ResponseBodyHash:    pgtype.Text{String: responseBodyHash, Valid: true},
		ResultReservationID: pgconv.UUIDToPgtype(resultReservationID),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	params := postgres.ClaimExpiredIdempotencyKeyParams{
		Key:         key,
		CustomerID:  customerID,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	claimed, err := r.queries.ClaimExpiredIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}

	return claimed == 1, nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID) error {
	err := r.queries.ReleaseIdempotencyKey(ctx, tx, postgres.GetIdempotencyKeyParams{
		Key:        key,
		CustomerID: customerID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
