package pricing

const stormRainfallMm = 10

func blockingStage(weather *WeatherSnapshot) (string, bool) {
	if weather != nil && weather.RainfallMm >= stormRainfallMm {
		return BlockReasonWeatherStorm, true
	}
	return "", false
}

func blockedResult(basePrice int64, reason string) Result {
	return Result{
		FinalPrice:   basePrice,
		BasePrice:    basePrice,
		DiscountRate: 0,
		IsBlocked:    true,
		BlockReason:  reason,
		Factors:      []Factor{},
	}
}
