package clock

import (
	"time"

	clockport "github.com/atlasvoyages/itinerary-api/internal/ports/out/clock"
)

// SystemTimers schedules callbacks with real time.AfterFunc timers.
type SystemTimers struct{}

func NewSystemTimers() SystemTimers { return SystemTimers{} }

func (SystemTimers) AfterFunc(d time.Duration, fn func()) clockport.Timer {
	return time.AfterFunc(d, fn)
}
