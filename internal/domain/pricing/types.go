package pricing

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidLoyaltySegment = errors.New("invalid loyalty segment")

type LoyaltySegment string

const (
	SegmentFuture   LoyaltySegment = "FUTURE"
	SegmentSmart    LoyaltySegment = "SMART"
	SegmentCherry   LoyaltySegment = "CHERRY"
	SegmentPrestige LoyaltySegment = "PRESTIGE"
)

func (s LoyaltySegment) String() string {
	return string(s)
}

func (s LoyaltySegment) IsValid() bool {
	switch s {
	case SegmentFuture, SegmentSmart, SegmentCherry, SegmentPrestige:
		return true
	default:
		return false
	}
}

func ParseLoyaltySegment(s string) (LoyaltySegment, error) {
	segment := LoyaltySegment(strings.ToUpper(strings.TrimSpace(s)))
	if !segment.IsValid() {
		return "", ErrInvalidLoyaltySegment
	}
	return segment, nil
}

type FactorCode string

const (
	FactorTimeStep  FactorCode = "TIME_STEP"
	FactorWeather   FactorCode = "WEATHER"
	FactorVIPStatus FactorCode = "VIP_STATUS"
	FactorNearby    FactorCode = "LBS_NEARBY"
	FactorMaxCap    FactorCode = "MAX_CAP"
)

const BlockReasonWeatherStorm = "WEATHER_STORM"

// TimeSlot is the priced unit. BasePrice is expected to be >= 0 and is not
// validated here.
type TimeSlot struct {
	ID        int64     `json:"id"`
	StartsAt  time.Time `json:"startsAt"`
	BasePrice int64     `json:"basePrice"`
}

type Customer struct {
	LoyaltySegment LoyaltySegment `json:"loyaltySegment"`
}

type WeatherSnapshot struct {
	RainfallMm                  float64 `json:"rainfallMm"`
	PrecipitationProbabilityPct int     `json:"precipitationProbabilityPct"`
}

// PricingContext is the complete input of a calculation. A nil optional
// field skips the stage that reads it. Clock is the caller's notion of now;
// the engine never reads the system clock.
type PricingContext struct {
	Slot        TimeSlot         `json:"slot"`
	Customer    *Customer        `json:"customer,omitempty"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	ProximityKm *float64         `json:"proximityKm,omitempty"`
	Clock       time.Time        `json:"clock"`
}

// Factor is one line of the price audit trail. Amount is negative for
// discounts and positive for corrections; Rate is relative to the running
// price at the moment the factor was applied.
type Factor struct {
	Code        FactorCode `json:"code"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Rate        float64    `json:"rate"`
}

type StepStatus struct {
	CurrentStep int        `json:"currentStep"`
	NextStepAt  *time.Time `json:"nextStepAt,omitempty"`
}

type PanicMode struct {
	Active      bool   `json:"active"`
	MinutesLeft int    `json:"minutesLeft"`
	Reason      string `json:"reason"`
}

type Result struct {
	FinalPrice   int64      `json:"finalPrice"`
	BasePrice    int64      `json:"basePrice"`
	DiscountRate float64    `json:"discountRate"`
	IsBlocked    bool       `json:"isBlocked"`
	BlockReason  string     `json:"blockReason,omitempty"`
	Factors      []Factor   `json:"factors"`
	StepStatus   StepStatus `json:"stepStatus"`
	PanicMode    PanicMode  `json:"panicMode"`
}

// Discount is BasePrice - FinalPrice.
func (r Result) Discount() int64 {
	return r.BasePrice - r.FinalPrice
}

func (r Result) HasFactor(code FactorCode) bool {
	for _, f := range r.Factors {
		if f.Code == code {
			return true
		}
	}
	return false
}
