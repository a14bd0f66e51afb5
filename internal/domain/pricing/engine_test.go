//go:build unit

package pricing_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"teetime/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Slot 42 has step boundaries at 120, 92 and 65 minutes before tee-off and
// never triggers panic mode.
// Slot 123 has boundaries at 120, 108 and 87 and always triggers panic mode
// inside the 30 minute window.
const (
	calmSlotID  int64 = 42
	panicSlotID int64 = 123
)

var teeOff = time.Date(2026, 5, 9, 7, 30, 0, 0, time.UTC)

func minutesBefore(m float64) time.Time {
	return teeOff.Add(-time.Duration(m * float64(time.Minute)))
}

func slot(id, basePrice int64) pricing.TimeSlot {
	return pricing.TimeSlot{ID: id, StartsAt: teeOff, BasePrice: basePrice}
}

func ptr[T any](v T) *T {
	return &v
}

func codes(r pricing.Result) []pricing.FactorCode {
	out := make([]pricing.FactorCode, 0, len(r.Factors))
	for _, f := range r.Factors {
		out = append(out, f.Code)
	}
	return out
}

func TestCalculate_Blocking(t *testing.T) {
	t.Run("storm blocks regardless of other inputs", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:        slot(calmSlotID, 100000),
			Customer:    &pricing.Customer{LoyaltySegment: pricing.SegmentPrestige},
			Weather:     &pricing.WeatherSnapshot{RainfallMm: 15, PrecipitationProbabilityPct: 100},
			ProximityKm: ptr(1.0),
			Clock:       minutesBefore(15),
		})

		assert.True(t, actual.IsBlocked)
		assert.Equal(t, pricing.BlockReasonWeatherStorm, actual.BlockReason)
		assert.Equal(t, int64(100000), actual.FinalPrice)
		assert.Equal(t, int64(100000), actual.BasePrice)
		assert.Equal(t, 0.0, actual.DiscountRate)
		require.NotNil(t, actual.Factors)
		assert.Empty(t, actual.Factors)
		assert.False(t, actual.PanicMode.Active)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:    slot(calmSlotID, 100000),
			Weather: &pricing.WeatherSnapshot{RainfallMm: 10},
			Clock:   minutesBefore(300),
		})
		assert.True(t, actual.IsBlocked)
	})

	t.Run("just below the threshold is a weather discount", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:    slot(calmSlotID, 100000),
			Weather: &pricing.WeatherSnapshot{RainfallMm: 9.99},
			Clock:   minutesBefore(300),
		})
		assert.False(t, actual.IsBlocked)
		assert.Empty(t, actual.BlockReason)
		assert.Equal(t, []pricing.FactorCode{pricing.FactorWeather}, codes(actual))
		assert.Equal(t, int64(80000), actual.FinalPrice)
	})

	t.Run("blocked result serializes an empty factor list", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:    slot(calmSlotID, 50000),
			Weather: &pricing.WeatherSnapshot{RainfallMm: 22},
			Clock:   minutesBefore(10),
		})
		b, err := json.Marshal(actual)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"factors":[]`)
		assert.Contains(t, string(b), `"blockReason":"WEATHER_STORM"`)
	})
}

func TestCalculate_StepDiscount(t *testing.T) {
	testCases := []struct {
		name       string
		basePrice  int64
		minutes    float64
		wantLevel  int
		wantAmount int64
		wantNextAt *time.Time
	}{
		{name: "before the first window", basePrice: 100000, minutes: 121, wantLevel: 0, wantNextAt: ptr(teeOff.Add(-120 * time.Minute))},
		{name: "first window boundary belongs to level 1", basePrice: 100000, minutes: 120, wantLevel: 1, wantAmount: -10000, wantNextAt: ptr(teeOff.Add(-92 * time.Minute))},
		{name: "level 1", basePrice: 100000, minutes: 100, wantLevel: 1, wantAmount: -10000, wantNextAt: ptr(teeOff.Add(-92 * time.Minute))},
		{name: "second window boundary belongs to level 2", basePrice: 100000, minutes: 92, wantLevel: 2, wantAmount: -20000, wantNextAt: ptr(teeOff.Add(-65 * time.Minute))},
		{name: "level 2", basePrice: 100000, minutes: 80, wantLevel: 2, wantAmount: -20000, wantNextAt: ptr(teeOff.Add(-65 * time.Minute))},
		{name: "level 3", basePrice: 100000, minutes: 65, wantLevel: 3, wantAmount: -30000},
		{name: "level 3 after tee-off", basePrice: 100000, minutes: -5, wantLevel: 3, wantAmount: -30000},
		{name: "standard tier uses the smaller step", basePrice: 99999, minutes: 80, wantLevel: 2, wantAmount: -10000, wantNextAt: ptr(teeOff.Add(-65 * time.Minute))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := pricing.Calculate(pricing.PricingContext{
				Slot:  slot(calmSlotID, tc.basePrice),
				Clock: minutesBefore(tc.minutes),
			})

			assert.Equal(t, tc.wantLevel, actual.StepStatus.CurrentStep)
			if diff := cmp.Diff(tc.wantNextAt, actual.StepStatus.NextStepAt); diff != "" {
				t.Errorf("NextStepAt mismatch (-want +got):\n%s", diff)
			}

			if tc.wantLevel == 0 {
				assert.Empty(t, actual.Factors)
				assert.Equal(t, tc.basePrice, actual.FinalPrice)
				return
			}
			require.Len(t, actual.Factors, 1)
			f := actual.Factors[0]
			assert.Equal(t, pricing.FactorTimeStep, f.Code)
			assert.Equal(t, tc.wantAmount, f.Amount)
			assert.Equal(t, float64(-tc.wantAmount)/float64(tc.basePrice), f.Rate)
			assert.Equal(t, tc.basePrice+tc.wantAmount, actual.FinalPrice)
		})
	}

	t.Run("scenario: level 2 on a premium slot deducts exactly 20000", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:  slot(calmSlotID, 100000),
			Clock: minutesBefore(80),
		})
		require.Equal(t, 2, actual.StepStatus.CurrentStep)
		require.Len(t, actual.Factors, 1)
		assert.Equal(t, pricing.Factor{
			Code:        pricing.FactorTimeStep,
			Description: "Tee-off approaching: step 2 markdown",
			Amount:      -20000,
			Rate:        0.2,
		}, actual.Factors[0])
		assert.Equal(t, int64(80000), actual.FinalPrice)
		assert.Equal(t, 0.2, actual.DiscountRate)
	})

	t.Run("fifteen minutes out is always the last level", func(t *testing.T) {
		for id := int64(1); id <= 500; id++ {
			actual := pricing.Calculate(pricing.PricingContext{
				Slot:  slot(id, 100000),
				Clock: minutesBefore(15),
			})
			require.Equal(t, 3, actual.StepStatus.CurrentStep, "slot %d", id)
			require.Nil(t, actual.StepStatus.NextStepAt)
		}
	})

	t.Run("schedule is keyed by slot id", func(t *testing.T) {
		clock := minutesBefore(110)
		a := pricing.Calculate(pricing.PricingContext{Slot: slot(calmSlotID, 100000), Clock: clock})
		b := pricing.Calculate(pricing.PricingContext{Slot: slot(7, 100000), Clock: clock})

		require.NotNil(t, a.StepStatus.NextStepAt)
		require.NotNil(t, b.StepStatus.NextStepAt)
		assert.Equal(t, teeOff.Add(-92*time.Minute), *a.StepStatus.NextStepAt)
		assert.Equal(t, teeOff.Add(-100*time.Minute), *b.StepStatus.NextStepAt)
	})
}

func TestCalculate_PercentDiscounts(t *testing.T) {
	farOut := minutesBefore(300)

	t.Run("weather thresholds", func(t *testing.T) {
		testCases := []struct {
			name     string
			weather  *pricing.WeatherSnapshot
			wantRate float64
		}{
			{name: "no weather", weather: nil},
			{name: "dry and clear", weather: &pricing.WeatherSnapshot{RainfallMm: 0, PrecipitationProbabilityPct: 29}},
			{name: "light chance of rain", weather: &pricing.WeatherSnapshot{PrecipitationProbabilityPct: 30}, wantRate: 0.10},
			{name: "just under heavy probability", weather: &pricing.WeatherSnapshot{PrecipitationProbabilityPct: 59}, wantRate: 0.10},
			{name: "heavy probability", weather: &pricing.WeatherSnapshot{PrecipitationProbabilityPct: 60}, wantRate: 0.20},
			{name: "measurable rain", weather: &pricing.WeatherSnapshot{RainfallMm: 1}, wantRate: 0.20},
			{name: "drizzle", weather: &pricing.WeatherSnapshot{RainfallMm: 0.99}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				actual := pricing.Calculate(pricing.PricingContext{
					Slot:    slot(calmSlotID, 100000),
					Weather: tc.weather,
					Clock:   farOut,
				})
				if tc.wantRate == 0 {
					assert.Empty(t, actual.Factors)
					return
				}
				require.Len(t, actual.Factors, 1)
				assert.Equal(t, pricing.FactorWeather, actual.Factors[0].Code)
				assert.Equal(t, tc.wantRate, actual.Factors[0].Rate)
				assert.Equal(t, -int64(math.Floor(100000*tc.wantRate)), actual.Factors[0].Amount)
			})
		}
	})

	t.Run("scenario: prestige discount applies to the stepped price", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:     slot(calmSlotID, 100000),
			Customer: &pricing.Customer{LoyaltySegment: pricing.SegmentPrestige},
			Clock:    minutesBefore(100),
		})

		require.Equal(t, []pricing.FactorCode{pricing.FactorTimeStep, pricing.FactorVIPStatus}, codes(actual))
		assert.Equal(t, int64(-4500), actual.Factors[1].Amount)
		assert.Equal(t, 0.05, actual.Factors[1].Rate)
		assert.Equal(t, int64(85500), actual.FinalPrice)
		assert.Equal(t, 0.14, actual.DiscountRate)
	})

	t.Run("other segments get no loyalty discount", func(t *testing.T) {
		for _, segment := range []pricing.LoyaltySegment{pricing.SegmentFuture, pricing.SegmentSmart, pricing.SegmentCherry} {
			actual := pricing.Calculate(pricing.PricingContext{
				Slot:     slot(calmSlotID, 100000),
				Customer: &pricing.Customer{LoyaltySegment: segment},
				Clock:    farOut,
			})
			assert.Empty(t, actual.Factors, segment.String())
		}
	})

	t.Run("scenario: proximity compounds on weather and segment", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:        slot(calmSlotID, 100000),
			Customer:    &pricing.Customer{LoyaltySegment: pricing.SegmentPrestige},
			Weather:     &pricing.WeatherSnapshot{PrecipitationProbabilityPct: 30},
			ProximityKm: ptr(10.0),
			Clock:       farOut,
		})

		want := []pricing.Factor{
			{Code: pricing.FactorWeather, Description: "Rain forecast discount", Amount: -10000, Rate: 0.10},
			{Code: pricing.FactorVIPStatus, Description: "Prestige member discount", Amount: -4500, Rate: 0.05},
			{Code: pricing.FactorNearby, Description: "Nearby golfer discount", Amount: -8550, Rate: 0.10},
		}
		if diff := cmp.Diff(want, actual.Factors); diff != "" {
			t.Errorf("factors mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, int64(76950), actual.FinalPrice)
		assert.Equal(t, 0.23, actual.DiscountRate)
	})

	t.Run("proximity radius is inclusive", func(t *testing.T) {
		at := func(km *float64) pricing.Result {
			return pricing.Calculate(pricing.PricingContext{
				Slot:        slot(calmSlotID, 100000),
				ProximityKm: km,
				Clock:       farOut,
			})
		}
		assert.Equal(t, []pricing.FactorCode{pricing.FactorNearby}, codes(at(ptr(15.0))))
		assert.Empty(t, at(ptr(15.01)).Factors)
		assert.Empty(t, at(nil).Factors)
	})
}

func TestCalculate_Governance(t *testing.T) {
	t.Run("caps the aggregate discount at 40 percent", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:        slot(calmSlotID, 100000),
			Customer:    &pricing.Customer{LoyaltySegment: pricing.SegmentPrestige},
			Weather:     &pricing.WeatherSnapshot{RainfallMm: 3},
			ProximityKm: ptr(2.0),
			Clock:       minutesBefore(15),
		})

		want := []pricing.FactorCode{
			pricing.FactorTimeStep,
			pricing.FactorWeather,
			pricing.FactorVIPStatus,
			pricing.FactorNearby,
			pricing.FactorMaxCap,
		}
		require.Equal(t, want, codes(actual))

		capFactor := actual.Factors[4]
		assert.Equal(t, int64(12120), capFactor.Amount)
		assert.Equal(t, 0.1212, capFactor.Rate)
		assert.Equal(t, int64(60000), actual.FinalPrice)
		assert.Equal(t, 0.4, actual.DiscountRate)
	})

	t.Run("no correction when under the cap", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:    slot(calmSlotID, 100000),
			Weather: &pricing.WeatherSnapshot{RainfallMm: 3},
			Clock:   minutesBefore(100),
		})
		assert.False(t, actual.HasFactor(pricing.FactorMaxCap))
		assert.Equal(t, int64(72000), actual.FinalPrice)
	})

	t.Run("zero base price stays finite", func(t *testing.T) {
		actual := pricing.Calculate(pricing.PricingContext{
			Slot:    slot(calmSlotID, 0),
			Weather: &pricing.WeatherSnapshot{RainfallMm: 3},
			Clock:   minutesBefore(15),
		})
		assert.Equal(t, int64(0), actual.FinalPrice)
		assert.Equal(t, 0.0, actual.DiscountRate)
		for _, f := range actual.Factors {
			assert.False(t, math.IsInf(f.Rate, 0) || math.IsNaN(f.Rate), string(f.Code))
		}
		_, err := json.Marshal(actual)
		require.NoError(t, err)
	})
}

func TestCalculate_PanicMode(t *testing.T) {
	testCases := []struct {
		name        string
		slotID      int64
		minutes     float64
		wantActive  bool
		wantMinutes int
		wantReason  string
	}{
		{name: "moderate inside the window", slotID: panicSlotID, minutes: 20, wantActive: true, wantMinutes: 20, wantReason: pricing.PanicReasonModerate},
		{name: "window upper bound is inclusive", slotID: panicSlotID, minutes: 30, wantActive: true, wantMinutes: 30, wantReason: pricing.PanicReasonModerate},
		{name: "urgent at ten minutes", slotID: panicSlotID, minutes: 10, wantActive: true, wantMinutes: 10, wantReason: pricing.PanicReasonUrgent},
		{name: "minutes left is floored", slotID: panicSlotID, minutes: 20.5, wantActive: true, wantMinutes: 20, wantReason: pricing.PanicReasonModerate},
		{name: "just outside the window", slotID: panicSlotID, minutes: 30.01, wantMinutes: 30},
		{name: "at tee-off", slotID: panicSlotID, minutes: 0, wantMinutes: 0},
		{name: "after tee-off", slotID: panicSlotID, minutes: -5, wantMinutes: -5},
		{name: "trigger not drawn", slotID: calmSlotID, minutes: 20, wantMinutes: 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := pricing.Calculate(pricing.PricingContext{
				Slot:  slot(tc.slotID, 100000),
				Clock: minutesBefore(tc.minutes),
			})
			assert.Equal(t, pricing.PanicMode{
				Active:      tc.wantActive,
				MinutesLeft: tc.wantMinutes,
				Reason:      tc.wantReason,
			}, actual.PanicMode)
		})
	}

	t.Run("panic never changes the price", func(t *testing.T) {
		panicking := pricing.Calculate(pricing.PricingContext{Slot: slot(panicSlotID, 100000), Clock: minutesBefore(20)})
		require.True(t, panicking.PanicMode.Active)
		assert.Equal(t, int64(70000), panicking.FinalPrice)
		assert.Equal(t, []pricing.FactorCode{pricing.FactorTimeStep}, codes(panicking))
	})

	t.Run("never active outside the window", func(t *testing.T) {
		for id := int64(1); id <= 300; id++ {
			for _, m := range []float64{-60, -0.5, 0, 30.001, 45, 200} {
				actual := pricing.Calculate(pricing.PricingContext{Slot: slot(id, 100000), Clock: minutesBefore(m)})
				require.False(t, actual.PanicMode.Active, "slot %d at %v minutes", id, m)
			}
		}
	})
}

func TestCalculate_Properties(t *testing.T) {
	weathers := []*pricing.WeatherSnapshot{
		nil,
		{PrecipitationProbabilityPct: 35},
		{RainfallMm: 4, PrecipitationProbabilityPct: 90},
		{RainfallMm: 12},
	}
	customers := []*pricing.Customer{
		nil,
		{LoyaltySegment: pricing.SegmentSmart},
		{LoyaltySegment: pricing.SegmentPrestige},
	}
	proximities := []*float64{nil, ptr(3.0), ptr(40.0)}
	basePrices := []int64{0, 1, 4999, 10000, 55000, 99999, 100000, 250000}
	minutes := []float64{-10, 0, 5, 29.9, 61, 90, 119.99, 120, 180}

	forEachContext := func(fn func(pc pricing.PricingContext)) {
		for id := int64(1); id <= 40; id += 3 {
			for _, base := range basePrices {
				for _, m := range minutes {
					for _, w := range weathers {
						for _, c := range customers {
							for _, p := range proximities {
								fn(pricing.PricingContext{
									Slot:        slot(id, base),
									Customer:    c,
									Weather:     w,
									ProximityKm: p,
									Clock:       minutesBefore(m),
								})
							}
						}
					}
				}
			}
		}
	}

	t.Run("determinism", func(t *testing.T) {
		forEachContext(func(pc pricing.PricingContext) {
			first := pricing.Calculate(pc)
			second := pricing.Calculate(pc)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("results differ for %+v (-first +second):\n%s", pc, diff)
			}
		})
	})

	t.Run("bounded discount and monotonic bound", func(t *testing.T) {
		forEachContext(func(pc pricing.PricingContext) {
			actual := pricing.Calculate(pc)
			base := pc.Slot.BasePrice

			require.GreaterOrEqual(t, actual.FinalPrice, int64(0))
			require.LessOrEqual(t, actual.FinalPrice, base)
			require.LessOrEqual(t, actual.Discount(), int64(math.Floor(float64(base)*0.40)))
			require.GreaterOrEqual(t, actual.DiscountRate, 0.0)
			require.LessOrEqual(t, actual.DiscountRate, 0.40)
		})
	})

	t.Run("blocking precedence", func(t *testing.T) {
		forEachContext(func(pc pricing.PricingContext) {
			actual := pricing.Calculate(pc)
			storm := pc.Weather != nil && pc.Weather.RainfallMm >= 10
			require.Equal(t, storm, actual.IsBlocked)
			if storm {
				require.Empty(t, actual.Factors)
				require.Equal(t, pc.Slot.BasePrice, actual.FinalPrice)
			}
		})
	})

	t.Run("seed reproducibility across wall-clock time", func(t *testing.T) {
		pc := pricing.PricingContext{Slot: slot(calmSlotID, 100000), Clock: minutesBefore(100)}
		first := pricing.Calculate(pc)
		time.Sleep(5 * time.Millisecond)
		second := pricing.Calculate(pc)

		require.NotNil(t, first.StepStatus.NextStepAt)
		assert.Equal(t, *first.StepStatus.NextStepAt, *second.StepStatus.NextStepAt)
		assert.Equal(t, teeOff.Add(-92*time.Minute), *first.StepStatus.NextStepAt)
	})

	t.Run("engine matches the function", func(t *testing.T) {
		var calc pricing.Calculator = pricing.NewEngine()
		pc := pricing.PricingContext{
			Slot:        slot(panicSlotID, 180000),
			Customer:    &pricing.Customer{LoyaltySegment: pricing.SegmentPrestige},
			ProximityKm: ptr(4.0),
			Clock:       minutesBefore(25),
		}
		if diff := cmp.Diff(pricing.Calculate(pc), calc.Calculate(pc)); diff != "" {
			t.Errorf("engine mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMinutesUntil(t *testing.T) {
	assert.Equal(t, 15.0, pricing.MinutesUntil(teeOff, minutesBefore(15)))
	assert.Equal(t, -1.5, pricing.MinutesUntil(teeOff, teeOff.Add(90*time.Second)))
	assert.Equal(t, 0.0, pricing.MinutesUntil(teeOff, teeOff.Add(500*time.Microsecond)))
}

func TestParseLoyaltySegment(t *testing.T) {
	got, err := pricing.ParseLoyaltySegment(" prestige ")
	require.NoError(t, err)
	assert.Equal(t, pricing.SegmentPrestige, got)

	_, err = pricing.ParseLoyaltySegment("GOLD")
	require.ErrorIs(t, err, pricing.ErrInvalidLoyaltySegment)
}
