package pricing

import "math"

const (
	panicWindowMinutes = 30
	panicUrgentMinutes = 10
	panicSeedOffset    = 999
	panicThreshold     = 0.8
)

const (
	PanicReasonUrgent   = "Tee-off in under 10 minutes. Last call for this slot!"
	PanicReasonModerate = "Tee-off within 30 minutes. Book now before it's gone."
)

// detectPanic never touches the price. Its generator is seeded apart from
// the step schedule so the two signals stay decorrelated.
func detectPanic(slotID int64, minutesUntilStart float64) PanicMode {
	mode := PanicMode{MinutesLeft: int(math.Floor(minutesUntilStart))}

	if minutesUntilStart <= 0 || minutesUntilStart > panicWindowMinutes {
		return mode
	}

	if NewSeededGenerator(slotID+panicSeedOffset).Next() <= panicThreshold {
		return mode
	}

	mode.Active = true
	if minutesUntilStart <= panicUrgentMinutes {
		mode.Reason = PanicReasonUrgent
	} else {
		mode.Reason = PanicReasonModerate
	}
	return mode
}
