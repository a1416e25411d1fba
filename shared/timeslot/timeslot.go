package timeslot

import (
	"fmt"
	"math"
	"slate/shared/constant"
	"slate/shared/failure"
	"strconv"
	"strings"
)

// ParseClock converts a wall-clock "HH:MM" string into minutes of day.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid time format: %q, expected HH:MM", value)) //nolint:wrapcheck
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid time format: %q, expected HH:MM", value)) //nolint:wrapcheck
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid time format: %q, expected HH:MM", value)) //nolint:wrapcheck
	}

	return hours*constant.MinutesPerHour + minutes, nil
}

// ElapsedMinutes returns the duration from start to end in minutes of day.
// A negative span is treated as a session crossing midnight once, never more:
// an end that appears to precede its start is an overnight session, not an
// error.
func ElapsedMinutes(start, end int) int {
	elapsed := end - start
	if elapsed < 0 {
		elapsed += constant.MinutesPerDay
	}

	return elapsed
}

// RoundToHalfHour rounds a minute count to the nearest half hour, expressed
// in hours, floored at zero. Downstream reports sum these values, so the
// floor-at-zero behavior must hold exactly.
func RoundToHalfHour(minutes int) float64 {
	return math.Max(0, math.Round(float64(minutes)/30)*0.5)
}

// BillableHours derives the break-adjusted, rounded duration of a session.
// Actual times take precedence over scheduled times side by side: an actual
// start without an actual end (or vice versa) defaults the missing side to
// its scheduled value. A break longer than the session yields 0, never a
// negative value; messy real-world entries are tolerated, not rejected.
func BillableHours(scheduledFrom, scheduledTo, actualFrom, actualTo string, breakHours int) (float64, error) {
	effectiveFrom := scheduledFrom
	if actualFrom != "" {
		effectiveFrom = actualFrom
	}

	effectiveTo := scheduledTo
	if actualTo != "" {
		effectiveTo = actualTo
	}

	start, err := ParseClock(effectiveFrom)
	if err != nil {
		return 0, err
	}

	end, err := ParseClock(effectiveTo)
	if err != nil {
		return 0, err
	}

	raw := ElapsedMinutes(start, end) - breakHours*constant.MinutesPerHour

	return RoundToHalfHour(raw), nil
}

// Overlap reports whether two half-open ranges share any minute. Touching
// endpoints do not overlap.
func Overlap(fromA, toA, fromB, toB int) bool {
	return fromA < toB && fromB < toA
}
