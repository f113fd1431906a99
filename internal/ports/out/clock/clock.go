package clock

import "time"

// Clock provides time to the application.
// Using an interface enables deterministic tests via a controllable implementation.
type Clock interface {
	Now() time.Time
}

// Timer is a handle to a pending AfterFunc callback.
// Stop reports whether the callback was prevented from running.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules callbacks after a delay. The auto-save scheduler
// takes its timers from here so tests can drive virtual time instead of
// sleeping.
type TimerFactory interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
