package components

import (
	"log/slog"

	"teetime/internal/infra/cache"
	"teetime/internal/infra/postgres"
	"teetime/internal/infra/readstore"
	"teetime/internal/infra/repository"
	"teetime/internal/infra/uow"
	"teetime/internal/pkg/config"
	"teetime/internal/usecase/queries"
	"teetime/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Pricing inputs (tee time + customer)
		fx.Annotate(
			readstore.NewPricingReadStore,
			fx.As(new(shared.PricingReads)),
		),
		// Weather
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.WeatherReadQueries)),
		),
		readstore.NewWeatherReadStore,
		NewWeatherSource,
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Idempotency (maintenance only; request paths go through the UoW)
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.IdempotencyWriteQueries)),
		),
		repository.NewIdempotencyRepository,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *postgres.Queries {
	return postgres.New()
}

func NewDBTX(pool *pgxpool.Pool) postgres.DBTX {
	return pool
}

// NewWeatherSource puts the Redis read-through cache in front of the weather
// table when a Redis client is configured.
func NewWeatherSource(store *readstore.WeatherReadStore, rdb *redis.Client, cfg config.Config, logger *slog.Logger) shared.WeatherSource {
	if rdb == nil {
		return store
	}
	logger.Info("Weather cache enabled", "ttl", cfg.Redis.WeatherCacheTTL)
	return cache.NewWeatherCache(store, rdb, cfg.Redis.WeatherCacheTTL)
}
