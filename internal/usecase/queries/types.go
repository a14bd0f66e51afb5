package queries

import (
	"time"

	"teetime/internal/domain/pricing"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID         uuid.UUID      `json:"id"`
	TeeTimeID  int64          `json:"tee_time_id"`
	CourseName string         `json:"course_name"`
	StartsAt   time.Time      `json:"starts_at"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Status     string         `json:"status"`
	Quote      pricing.Result `json:"quote"`
	PricedAt   time.Time      `json:"priced_at"`
	Inputs     PricingInputs  `json:"pricing_inputs"`
	Note       *string        `json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PricingInputs is what the engine saw at purchase besides the slot and the
// clock.
type PricingInputs struct {
	Segment     *pricing.LoyaltySegment  `json:"segment,omitempty"`
	Weather     *pricing.WeatherSnapshot `json:"weather,omitempty"`
	ProximityKm *float64                 `json:"proximity_km,omitempty"`
}

type ReservationListItem struct {
	ID           uuid.UUID `json:"id"`
	TeeTimeID    int64     `json:"tee_time_id"`
	CourseName   string    `json:"course_name"`
	StartsAt     time.Time `json:"starts_at"`
	Status       string    `json:"status"`
	FinalPrice   int64     `json:"final_price"`
	DiscountRate float64   `json:"discount_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuoteView is a price shown to a shopper. It is informational only; a
// purchase always reprices.
type QuoteView struct {
	TeeTimeID  int64          `json:"tee_time_id"`
	CourseName string         `json:"course_name"`
	StartsAt   time.Time      `json:"starts_at"`
	QuotedAt   time.Time      `json:"quoted_at"`
	Result     pricing.Result `json:"result"`
}
