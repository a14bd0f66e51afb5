package converter

import (
	"encoding/json"
	"fmt"
	"math"

	"teetime/internal/domain/pricing"
	"teetime/internal/domain/reservation"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// storedPricingInputs is the reservations.pricing_inputs document. Together
// with the tee time, base_price and pricing_clock it is enough to replay the
// sale through the engine.
type storedPricingInputs struct {
	Segment     *pricing.LoyaltySegment  `json:"segment,omitempty"`
	Weather     *pricing.WeatherSnapshot `json:"weather,omitempty"`
	ProximityKm *float64                 `json:"proximityKm,omitempty"`
}

// ReservationToInfra flattens the quote a reservation was sold at. Factors
// are stored verbatim as the price's audit trail.
func ReservationToInfra(res *reservation.Reservation) (postgres.CreateReservationParams, error) {
	quote := res.Quote()

	factors := quote.Factors
	if factors == nil {
		factors = []pricing.Factor{}
	}
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return postgres.CreateReservationParams{}, fmt.Errorf("marshal factors: %w", err)
	}

	rate, err := pgconv.RateToNumeric(quote.DiscountRate)
	if err != nil {
		return postgres.CreateReservationParams{}, fmt.Errorf("discount rate %v: %w", quote.DiscountRate, err)
	}

	stored := storedPricingInputs{
		Weather:     res.Inputs().Weather,
		ProximityKm: res.Inputs().ProximityKm,
	}
	if c := res.Inputs().Customer; c != nil {
		segment := c.LoyaltySegment
		stored.Segment = &segment
	}
	inputsJSON, err := json.Marshal(stored)
	if err != nil {
		return postgres.CreateReservationParams{}, fmt.Errorf("marshal pricing inputs: %w", err)
	}

	minutesLeft := quote.PanicMode.MinutesLeft
	if minutesLeft > math.MaxInt32 || minutesLeft < math.MinInt32 {
		return postgres.CreateReservationParams{}, fmt.Errorf("panic minutes out of int32 range: %d", minutesLeft)
	}

	params := postgres.CreateReservationParams{
		ID:               res.ID(),
		TeeTimeID:        res.TeeTimeID(),
		CustomerID:       res.CustomerID(),
		Status:           res.Status().String(),
		BasePrice:        quote.BasePrice,
		FinalPrice:       quote.FinalPrice,
		DiscountRate:     rate,
		Factors:          factorsJSON,
		CurrentStep:      int32(quote.StepStatus.CurrentStep), // #nosec G115 -- step level is 0..3
		PanicActive:      quote.PanicMode.Active,
		PanicMinutesLeft: int32(minutesLeft),
		PanicReason:      pgconv.NullableText(quote.PanicMode.Reason),
		PricingClock:     pgconv.TimeToPgtype(res.PricedAt()),
		PricingInputs:    inputsJSON,
		Note:             pgconv.NullableText(res.Note().String()),
	}

	if next := quote.StepStatus.NextStepAt; next != nil {
		params.NextStepAt = pgconv.TimeToPgtype(*next)
	} else {
		params.NextStepAt = pgtype.Timestamptz{Valid: false}
	}

	return params, nil
}

// QuoteFromRow rebuilds the stored pricing result. Stored reservations are
// never blocked, so IsBlocked and BlockReason stay zero.
func QuoteFromRow(row postgres.Reservations) (pricing.Result, error) {
	factors := []pricing.Factor{}
	if len(row.Factors) > 0 {
		if err := json.Unmarshal(row.Factors, &factors); err != nil {
			return pricing.Result{}, fmt.Errorf("unmarshal factors: %w", err)
		}
	}

	rate, err := pgconv.RateFromNumeric(row.DiscountRate)
	if err != nil {
		return pricing.Result{}, err
	}

	result := pricing.Result{
		FinalPrice:   row.FinalPrice,
		BasePrice:    row.BasePrice,
		DiscountRate: rate,
		Factors:      factors,
		StepStatus: pricing.StepStatus{
			CurrentStep: int(row.CurrentStep),
		},
		PanicMode: pricing.PanicMode{
			Active:      row.PanicActive,
			MinutesLeft: int(row.PanicMinutesLeft),
			Reason:      pgconv.StringFromPgtype(row.PanicReason),
		},
	}
	if row.NextStepAt.Valid {
		next := row.NextStepAt.Time
		result.StepStatus.NextStepAt = &next
	}

	return result, nil
}

// PricingInputsFromRow rebuilds what the engine saw besides the slot and the
// clock. Rows written before the column existed decode to empty inputs.
func PricingInputsFromRow(row postgres.Reservations) (reservation.PricingInputs, error) {
	var stored storedPricingInputs
	if len(row.PricingInputs) > 0 {
		if err := json.Unmarshal(row.PricingInputs, &stored); err != nil {
			return reservation.PricingInputs{}, fmt.Errorf("unmarshal pricing inputs: %w", err)
		}
	}

	inputs := reservation.PricingInputs{
		Weather:     stored.Weather,
		ProximityKm: stored.ProximityKm,
	}
	if stored.Segment != nil {
		inputs.Customer = &pricing.Customer{LoyaltySegment: *stored.Segment}
	}
	return inputs, nil
}
