package shared

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

import (
	"context"
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/domain/reservation"
	"teetime/internal/infra/postgres"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() postgres.DBTX
}

// PricingReads loads what the engine needs besides weather.
type PricingReads interface {
	TeeTimeByID(ctx context.Context, id int64) (*TeeTimeSnapshot, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*CustomerSnapshot, error)
}

type CommandReads interface {
	PricingReads
	IdempotencyByKey(ctx context.Context, key, customerID uuid.UUID) (*IdempotencyRecord, error)
}

// WeatherSource returns the latest observation for a course, or nil when the
// course has none.
type WeatherSource interface {
	LatestForCourse(ctx context.Context, courseName string) (*pricing.WeatherSnapshot, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx postgres.DBTX, res *reservation.Reservation) (uuid.UUID, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call created the key.
	TryInsert(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	// ClaimExpired takes over an expired key for a new request.
	ClaimExpired(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	Release(ctx context.Context, tx postgres.DBTX, key, customerID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx postgres.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
