package pricing

import "math"

const (
	heavyWeatherRate = 0.20
	lightWeatherRate = 0.10
	prestigeRate     = 0.05
	nearbyRate       = 0.10

	heavyRainfallMm       = 1
	heavyPrecipitationPct = 60
	lightPrecipitationPct = 30
	nearbyRadiusKm        = 15
)

type percentDiscount struct {
	code        FactorCode
	description string
	rate        float64
}

// percentDiscounts lists the applicable discounts in application order:
// weather, loyalty segment, proximity.
func percentDiscounts(pc PricingContext) []percentDiscount {
	discounts := make([]percentDiscount, 0, 3)

	if rate := weatherRate(pc.Weather); rate > 0 {
		discounts = append(discounts, percentDiscount{
			code:        FactorWeather,
			description: "Rain forecast discount",
			rate:        rate,
		})
	}

	if pc.Customer != nil && pc.Customer.LoyaltySegment == SegmentPrestige {
		discounts = append(discounts, percentDiscount{
			code:        FactorVIPStatus,
			description: "Prestige member discount",
			rate:        prestigeRate,
		})
	}

	if pc.ProximityKm != nil && *pc.ProximityKm <= nearbyRadiusKm {
		discounts = append(discounts, percentDiscount{
			code:        FactorNearby,
			description: "Nearby golfer discount",
			rate:        nearbyRate,
		})
	}

	return discounts
}

func weatherRate(weather *WeatherSnapshot) float64 {
	switch {
	case weather == nil:
		return 0
	case weather.RainfallMm >= heavyRainfallMm || weather.PrecipitationProbabilityPct >= heavyPrecipitationPct:
		return heavyWeatherRate
	case weather.PrecipitationProbabilityPct >= lightPrecipitationPct:
		return lightWeatherRate
	default:
		return 0
	}
}

// percentStage applies each discount to the running price, so every later
// discount compounds on the earlier ones.
func percentStage(price int64, discounts []percentDiscount, factors []Factor) (int64, []Factor) {
	for _, d := range discounts {
		amount := int64(math.Floor(float64(price) * d.rate))
		price -= amount
		factors = append(factors, Factor{
			Code:        d.code,
			Description: d.description,
			Amount:      -amount,
			Rate:        d.rate,
		})
	}
	return price, factors
}
