package clock

import (
	"slate/shared/timezone"
	"time"
)

// Clock supplies the current time. Services take it as a dependency instead
// of reading the wall clock inline, so date-gated rules (past-booking
// cancellation, leave lookups) stay deterministic under test.
type Clock interface {
	Now() time.Time
	// Today returns the current date truncated to midnight in the
	// application timezone.
	Today() time.Time
}

type appClock struct{}

// New returns a Clock backed by the application timezone.
func New() Clock {
	return appClock{}
}

func (appClock) Now() time.Time {
	return timezone.Now()
}

func (appClock) Today() time.Time {
	return Midnight(timezone.Now())
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a Clock pinned to the given instant, for tests.
func NewFixed(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) Today() time.Time {
	return Midnight(c.now)
}
