package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDurationMin is assumed when a scheduling request omits a duration.
const DefaultDurationMin = 60

// DateLayout is the calendar-date format used across the engine.
const DateLayout = "2006-01-02"

// Accepted wall-clock layouts: 24-hour, then 12-hour with meridiem
// (with or without a space before AM/PM).
var timeLayouts = []string{"15:04", "3:04 PM", "3:04PM"}

var errEmptyTime = errors.New("hearing time is required")

// ResolveWindow interprets date + localTime as wall-clock time in the given
// IANA timezone and returns the absolute [start, end) instant pair, with
// end = start + durationMin. A durationMin of 0 falls back to
// DefaultDurationMin; a negative duration is rejected. Pure function.
func ResolveWindow(date, localTime, timezone string, durationMin int) (time.Time, time.Time, error) {
	if durationMin == 0 {
		durationMin = DefaultDurationMin
	}
	if durationMin < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("duration must be positive, got %d", durationMin)
	}

	if strings.TrimSpace(localTime) == "" {
		return time.Time{}, time.Time{}, errEmptyTime
	}
	start, err := resolveLocal(date, localTime, timezone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, start.Add(time.Duration(durationMin) * time.Minute), nil
}

// resolveLocal combines a calendar date and an optional wall-clock time in
// the given zone. An empty time resolves to midnight.
func resolveLocal(date, localTime, timezone string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hearing date %q: %w", date, err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	hour, minute := 0, 0
	if s := strings.TrimSpace(localTime); s != "" {
		clock, err := parseClock(s)
		if err != nil {
			return time.Time{}, err
		}
		hour, minute = clock.Hour(), clock.Minute()
	}

	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayouts[0], s); err == nil {
		return t, nil
	}
	upper := strings.ToUpper(s)
	for _, layout := range timeLayouts[1:] {
		if t, err := time.Parse(layout, upper); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid hearing time %q (want HH:MM or H:MM AM/PM)", s)
}
