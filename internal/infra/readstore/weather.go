package readstore

//go:generate mockgen -source=weather.go -destination=../../../tests/mock/readstore/weather.go -package=readstoremock

import (
	"context"

	"teetime/internal/domain/pricing"
	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"
)

type WeatherReadQueries interface {
	GetLatestWeatherByCourse(ctx context.Context, db postgres.DBTX, courseName string) (postgres.WeatherSnapshots, error)
}

type WeatherReadStore struct {
	queries WeatherReadQueries
	db      postgres.DBTX
}

func NewWeatherReadStore(queries WeatherReadQueries, db postgres.DBTX) *WeatherReadStore {
	return &WeatherReadStore{
		queries: queries,
		db:      db,
	}
}

// LatestForCourse returns nil without error when the course has never been
// observed; pricing then applies no weather rule.
func (r *WeatherReadStore) LatestForCourse(ctx context.Context, courseName string) (*pricing.WeatherSnapshot, error) {
	row, err := r.queries.GetLatestWeatherByCourse(ctx, r.db, courseName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find latest weather", err)
	}

	return &pricing.WeatherSnapshot{
		RainfallMm:                  row.RainfallMm,
		PrecipitationProbabilityPct: int(row.PrecipitationProbabilityPct),
	}, nil
}
