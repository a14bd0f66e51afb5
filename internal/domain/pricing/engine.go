// Package pricing computes the price of a tee time from its base price, the
// time left before tee-off, the weather, the customer's loyalty segment and
// an optional proximity.
//
// Calculate is pure: identical inputs always give identical results,
// including the order and values of the factor audit trail. Results are
// persisted and later replayed, so every constant and every generator draw
// here is part of a compatibility contract.
package pricing

import "time"

type Calculator interface {
	Calculate(pc PricingContext) Result
}

// Engine adapts Calculate to the Calculator port.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Calculate(pc PricingContext) Result {
	return Calculate(pc)
}

func Calculate(pc PricingContext) Result {
	basePrice := pc.Slot.BasePrice

	if reason, blocked := blockingStage(pc.Weather); blocked {
		return blockedResult(basePrice, reason)
	}

	minutesUntilStart := MinutesUntil(pc.Slot.StartsAt, pc.Clock)
	price := basePrice
	factors := make([]Factor, 0, 5)

	schedule := newStepSchedule(pc.Slot.ID)
	level := schedule.level(minutesUntilStart)

	price, factors = stepStage(price, basePrice, level, factors)
	price, factors = percentStage(price, percentDiscounts(pc), factors)
	price, factors = governanceStage(price, basePrice, factors)

	panicMode := detectPanic(pc.Slot.ID, minutesUntilStart)

	return composeResult(basePrice, price, factors, schedule.status(level, pc.Slot.StartsAt), panicMode)
}

// MinutesUntil is the fractional number of minutes from clock to startsAt at
// millisecond resolution.
func MinutesUntil(startsAt, clock time.Time) float64 {
	return float64(startsAt.UnixMilli()-clock.UnixMilli()) / 60000
}
