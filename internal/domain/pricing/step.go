package pricing

import (
	"fmt"
	"time"
)

const (
	step1StartMinutes  = 120
	stepDurationMin    = 10
	stepDurationMax    = 30
	premiumTierPrice   = 100000
	premiumStepAmount  = 10000
	standardStepAmount = 5000
)

// stepSchedule holds, in minutes before tee-off, the instants at which step
// levels 1, 2 and 3 activate.
type stepSchedule [3]int

// newStepSchedule draws the two window durations from a generator seeded by
// the slot id. step1 is drawn before step2.
func newStepSchedule(slotID int64) stepSchedule {
	gen := NewSeededGenerator(slotID)

	step1Start := step1StartMinutes
	step1Duration := gen.Range(stepDurationMin, stepDurationMax)
	step2Start := step1Start - step1Duration
	step2Duration := gen.Range(stepDurationMin, stepDurationMax)
	step3Start := step2Start - step2Duration

	return stepSchedule{step1Start, step2Start, step3Start}
}

func (s stepSchedule) level(minutesUntilStart float64) int {
	for i, start := range s {
		if minutesUntilStart > float64(start) {
			return i
		}
	}
	return len(s)
}

func (s stepSchedule) status(level int, startsAt time.Time) StepStatus {
	status := StepStatus{CurrentStep: level}
	if level < len(s) {
		next := startsAt.Add(-time.Duration(s[level]) * time.Minute)
		status.NextStepAt = &next
	}
	return status
}

func stepAmount(basePrice int64) int64 {
	if basePrice >= premiumTierPrice {
		return premiumStepAmount
	}
	return standardStepAmount
}

// stepStage deducts a flat amount per active level. The deduction is not a
// percentage and does not compound.
func stepStage(price, basePrice int64, level int, factors []Factor) (int64, []Factor) {
	if level == 0 {
		return price, factors
	}

	deduction := int64(level) * stepAmount(basePrice)
	price -= deduction

	return price, append(factors, Factor{
		Code:        FactorTimeStep,
		Description: fmt.Sprintf("Tee-off approaching: step %d markdown", level),
		Amount:      -deduction,
		Rate:        ratio(deduction, basePrice),
	})
}
