package readstore

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation.go -package=readstoremock

import (
	"context"
	"fmt"
	"time"

	"teetime/internal/domain/reservation"
	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/infra/repository/converter"
	"teetime/internal/pkg/pgconv"
	"teetime/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.ReservationRow, error)
	ListReservationsByCustomerFirstPage(ctx context.Context, db postgres.DBTX, customerID uuid.UUID, limit int32) ([]postgres.ReservationRow, error)
	ListReservationsByCustomerKeyset(ctx context.Context, db postgres.DBTX, arg postgres.ListReservationsKeysetParams) ([]postgres.ReservationRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      postgres.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db postgres.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view, err := rowToReservationView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByCustomerFirstPage(ctx, r.db, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return rowsToListItems(rows)
}

func (r *ReservationReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByCustomerKeyset(ctx, r.db, postgres.ListReservationsKeysetParams{
		CustomerID:    customerID,
		LastCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		LastID:        lastID,
		Limit:         limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations after cursor", err)
	}
	return rowsToListItems(rows)
}

func rowToReservationView(row postgres.ReservationRow) (*queries.ReservationView, error) {
	quote, err := converter.QuoteFromRow(row.Reservations)
	if err != nil {
		return nil, err
	}
	status, err := reservation.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation status: %w", err)
	}
	inputs, err := converter.PricingInputsFromRow(row.Reservations)
	if err != nil {
		return nil, err
	}
	inputsView := queries.PricingInputs{
		Weather:     inputs.Weather,
		ProximityKm: inputs.ProximityKm,
	}
	if inputs.Customer != nil {
		segment := inputs.Customer.LoyaltySegment
		inputsView.Segment = &segment
	}

	return &queries.ReservationView{
		ID:         row.ID,
		TeeTimeID:  row.TeeTimeID,
		CourseName: row.CourseName,
		StartsAt:   pgconv.TimeFromPgtype(row.StartsAt),
		CustomerID: row.CustomerID,
		Status:     status.String(),
		Quote:      quote,
		PricedAt:   pgconv.TimeFromPgtype(row.PricingClock),
		Inputs:     inputsView,
		Note:       pgconv.StringPtrFromPgtype(row.Note),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func rowsToListItems(rows []postgres.ReservationRow) ([]*queries.ReservationListItem, error) {
	items := make([]*queries.ReservationListItem, 0, len(rows))
	for _, row := range rows {
		rate, err := pgconv.RateFromNumeric(row.DiscountRate)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode discount rate", err)
		}
		status, err := reservation.NewStatus(row.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation status", err)
		}
		items = append(items, &queries.ReservationListItem{
			ID:           row.ID,
			TeeTimeID:    row.TeeTimeID,
			CourseName:   row.CourseName,
			StartsAt:     pgconv.TimeFromPgtype(row.StartsAt),
			Status:       status.String(),
			FinalPrice:   row.FinalPrice,
			DiscountRate: rate,
			CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return items, nil
}
