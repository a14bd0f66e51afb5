package commands

import (
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TeeTimeID   int64    `json:"tee_time_id"`
	ProximityKm *float64 `json:"proximity_km,omitempty"`
	Note        string   `json:"note,omitempty"`
}

const (
	notificationKindEmail = "email"
	notificationKindPush  = "push"

	topicReservationCreated = "reservation_created"
	topicTeeTimePanic       = "tee_time_panic"
)

type reservationCreatedPayload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TeeTimeID     int64     `json:"tee_time_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	BasePrice     int64     `json:"base_price"`
	FinalPrice    int64     `json:"final_price"`
	Savings       int64     `json:"savings"`
}

type teeTimePanicPayload struct {
	TeeTimeID   int64  `json:"tee_time_id"`
	MinutesLeft int    `json:"minutes_left"`
	Reason      string `json:"reason"`
}
