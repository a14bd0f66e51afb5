package pricing

import "math"

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// SeededGenerator is a linear congruential source. Its constants and the
// number and order of draws are part of every persisted price, so they must
// never change.
type SeededGenerator struct {
	seed int64
}

func NewSeededGenerator(seed int64) *SeededGenerator {
	return &SeededGenerator{seed: seed}
}

// Next returns a value in [0, 1).
func (g *SeededGenerator) Next() float64 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.seed) / lcgModulus
}

// Range returns an integer in [lo, hi].
func (g *SeededGenerator) Range(lo, hi int) int {
	return lo + int(math.Floor(g.Next()*float64(hi-lo+1)))
}
