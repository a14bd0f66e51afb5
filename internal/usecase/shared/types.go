package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

// Write-side snapshots keep commands independent of the query read models.
type TeeTimeSnapshot struct {
	ID         int64
	CourseName string
	StartsAt   time.Time
	BasePrice  int64
}

type CustomerSnapshot struct {
	ID             uuid.UUID
	Email          string
	LoyaltySegment string
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	CustomerID          uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
