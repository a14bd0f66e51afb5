package reservation

import (
	"teetime/internal/domain/pricing"
	"teetime/internal/domain/teetime"
	"teetime/internal/pkg/clock"

	"github.com/google/uuid"
)

// PricingInputs are the optional parts of a pricing context that come from
// outside the tee time itself.
type PricingInputs struct {
	Customer    *pricing.Customer
	Weather     *pricing.WeatherSnapshot
	ProximityKm *float64
}

type Factory struct {
	Clock      clock.Clock
	Calculator pricing.Calculator
}

func NewFactory(clock clock.Clock, calculator pricing.Calculator) *Factory {
	return &Factory{
		Clock:      clock,
		Calculator: calculator,
	}
}

// CreateReservation prices the tee time at the moment of purchase. Quotes
// shown earlier are never honored directly.
func (f *Factory) CreateReservation(
	teeTimeEntity *teetime.TeeTime,
	customerID uuid.UUID,
	inputs PricingInputs,
	note Note,
) (*Reservation, error) {
	now := f.Clock.Now()
	if teeTimeEntity.HasStarted(now) {
		return nil, ErrTeeTimeStarted
	}

	quote := f.Calculator.Calculate(pricing.PricingContext{
		Slot:        teeTimeEntity.PricingSlot(),
		Customer:    inputs.Customer,
		Weather:     inputs.Weather,
		ProximityKm: inputs.ProximityKm,
		Clock:       now,
	})

	res, err := NewReservation(teeTimeEntity.ID(), customerID, quote, now, note)
	if err != nil {
		return nil, err
	}
	res.inputs = inputs
	return res, nil
}
