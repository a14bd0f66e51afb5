package pricing

import (
	"fmt"
	"math"
)

const maxDiscountRate = 0.40

// governanceStage caps the aggregate discount at maxDiscountRate of the base
// price. The cap correction is the only factor with a non-negative amount.
func governanceStage(price, basePrice int64, factors []Factor) (int64, []Factor) {
	maxDiscount := int64(math.Floor(float64(basePrice) * maxDiscountRate))
	minPrice := basePrice - maxDiscount

	if price < minPrice {
		correction := minPrice - price
		price = minPrice
		factors = append(factors, Factor{
			Code:        FactorMaxCap,
			Description: fmt.Sprintf("Discount capped at %d%%", int(maxDiscountRate*100)),
			Amount:      correction,
			Rate:        ratio(correction, basePrice),
		})
	}

	// Unreachable under the cap for any non-negative base price. Keep it: it
	// is the last guard against a negative price if the cap or any stage
	// constant changes.
	if price < 0 {
		price = 0
	}

	return price, factors
}
