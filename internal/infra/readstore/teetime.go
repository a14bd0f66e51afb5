package readstore

//go:generate mockgen -source=teetime.go -destination=../../../tests/mock/readstore/teetime.go -package=readstoremock

import (
	"context"

	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"
	"teetime/internal/usecase/shared"
)

type TeeTimeReadQueries interface {
	GetTeeTimeByID(ctx context.Context, db postgres.DBTX, id int64) (postgres.TeeTimes, error)
}

type TeeTimeReadStore struct {
	queries TeeTimeReadQueries
	db      postgres.DBTX
}

func NewTeeTimeReadStore(queries TeeTimeReadQueries, db postgres.DBTX) *TeeTimeReadStore {
	return &TeeTimeReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TeeTimeReadStore) TeeTimeByID(ctx context.Context, id int64) (*shared.TeeTimeSnapshot, error) {
	row, err := r.queries.GetTeeTimeByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("tee time not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tee time by ID", err)
	}

	return &shared.TeeTimeSnapshot{
		ID:         row.ID,
		CourseName: row.CourseName,
		StartsAt:   pgconv.TimeFromPgtype(row.StartsAt),
		BasePrice:  row.BasePrice,
	}, nil
}
