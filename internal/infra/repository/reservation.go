package repository

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock

import (
	"context"

	"teetime/internal/domain/reservation"
	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db postgres.DBTX, arg postgres.CreateReservationParams) (uuid.UUID, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      postgres.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db postgres.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create fails with DUPLICATE_KEY when the tee time already has a confirmed
// reservation.
func (r *ReservationRepository) Create(ctx context.Context, tx postgres.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params, err := converter.ReservationToInfra(res)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to convert reservation", err)
	}

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}
