package postgres

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Customers struct {
	ID             uuid.UUID
	Email          string
	LoyaltySegment string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type TeeTimes struct {
	ID         int64
	CourseName string
	StartsAt   pgtype.Timestamptz
	BasePrice  int64
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

type WeatherSnapshots struct {
	ID                          int64
	CourseName                  string
	ObservedAt                  pgtype.Timestamptz
	RainfallMm                  float64
	PrecipitationProbabilityPct int32
}

type Reservations struct {
	ID               uuid.UUID
	TeeTimeID        int64
	CustomerID       uuid.UUID
	Status           string
	BasePrice        int64
	FinalPrice       int64
	DiscountRate     pgtype.Numeric
	Factors          []byte
	CurrentStep      int32
	NextStepAt       pgtype.Timestamptz
	PanicActive      bool
	PanicMinutesLeft int32
	PanicReason      pgtype.Text
	PricingClock     pgtype.Timestamptz
	PricingInputs    []byte
	Note             pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// ReservationRow is a reservation joined with the tee time it books.
type ReservationRow struct {
	Reservations
	CourseName string
	StartsAt   pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key                 uuid.UUID
	CustomerID          uuid.UUID
	Endpoint            string
	RequestHash         string
	ResponseBodyHash    pgtype.Text
	Status              string
	ResultReservationID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

type CreateReservationParams struct {
	ID               uuid.UUID
	TeeTimeID        int64
	CustomerID       uuid.UUID
	Status           string
	BasePrice        int64
	FinalPrice       int64
	DiscountRate     pgtype.Numeric
	Factors          []byte
	CurrentStep      int32
	NextStepAt       pgtype.Timestamptz
	PanicActive      bool
	PanicMinutesLeft int32
	PanicReason      pgtype.Text
	PricingClock     pgtype.Timestamptz
	PricingInputs    []byte
	Note             pgtype.Text
}

type ListReservationsKeysetParams struct {
	CustomerID    uuid.UUID
	LastCreatedAt pgtype.Timestamptz
	LastID        uuid.UUID
	Limit         int32
}

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	CustomerID  uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

type GetIdempotencyKeyParams struct {
	Key        uuid.UUID
	CustomerID uuid.UUID
}

type UpdateIdempotencyKeyCompletedParams struct {
	Key                 uuid.UUID
	CustomerID          uuid.UUID
	ResponseBodyHash    pgtype.Text
	ResultReservationID pgtype.UUID
}

type ClaimExpiredIdempotencyKeyParams struct {
	Key         uuid.UUID
	CustomerID  uuid.UUID
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
	Status  string
}
