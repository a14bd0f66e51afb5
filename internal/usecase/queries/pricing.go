package queries

//go:generate mockgen -source=pricing.go -destination=../../../tests/mock/queries/pricing.go -package=queriesmock

import (
	"context"

	"teetime/internal/domain/pricing"
	"teetime/internal/metrics"
	"teetime/internal/pkg/clock"
	"teetime/internal/usecase/shared"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	TeeTimeID   int64
	CustomerID  *uuid.UUID
	ProximityKm *float64
}

type PricingQueries interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	reads      shared.PricingReads
	weather    shared.WeatherSource
	calculator pricing.Calculator
	clock      clock.Clock
}

func NewPricingQueries(reads shared.PricingReads, weather shared.WeatherSource, calculator pricing.Calculator, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{
		reads:      reads,
		weather:    weather,
		calculator: calculator,
		clock:      clk,
	}
}

// Quote prices a tee time for display. Blocked slots are returned as a
// result with IsBlocked set, not as an error.
func (q *pricingQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	loaded, err := shared.LoadPricingInputs(ctx, q.reads, q.weather, shared.PricingInputsRequest(req))
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	result := q.calculator.Calculate(pricing.PricingContext{
		Slot:        loaded.TeeTime.PricingSlot(),
		Customer:    loaded.Inputs.Customer,
		Weather:     loaded.Inputs.Weather,
		ProximityKm: loaded.Inputs.ProximityKm,
		Clock:       now,
	})
	metrics.ObserveResult(metrics.SourceQuote, result)

	return &QuoteView{
		TeeTimeID:  loaded.TeeTime.ID(),
		CourseName: loaded.TeeTime.CourseName(),
		StartsAt:   loaded.TeeTime.StartsAt(),
		QuotedAt:   now,
		Result:     result,
	}, nil
}
