package pricing

import "math"

func composeResult(basePrice, price int64, factors []Factor, step StepStatus, panicMode PanicMode) Result {
	return Result{
		FinalPrice:   price,
		BasePrice:    basePrice,
		DiscountRate: roundHalfUp(ratio(basePrice-price, basePrice), 2),
		Factors:      factors,
		StepStatus:   step,
		PanicMode:    panicMode,
	}
}

// ratio is part/basePrice, or 0 for a zero base price.
func ratio(part, basePrice int64) float64 {
	if basePrice == 0 {
		return 0
	}
	return float64(part) / float64(basePrice)
}

func roundHalfUp(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale+0.5) / scale
}
