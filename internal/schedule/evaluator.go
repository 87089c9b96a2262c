// Package schedule evaluates recurring weekly schedules in their own
// timezone. All functions are pure over their inputs, perform no I/O, and
// are safe to call from any number of goroutines concurrently.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/kioskops/fleetconfig/models"
)

// MinutesPerDay is the exclusive upper bound for a slot end ("24:00").
const MinutesPerDay = 24 * 60

// ParseClock parses a "HH:MM" wall-clock string into minutes since midnight.
// "24:00" is accepted and yields MinutesPerDay; it is valid as a slot end
// bound only, which the validators enforce.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", value)
	}

	hours, err := strconv.Atoi(value[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", value)
	}
	minutes, err := strconv.Atoi(value[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", value)
	}

	if hours == 24 && minutes == 0 {
		return MinutesPerDay, nil
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", value)
	}

	return hours*60 + minutes, nil
}

// location resolves the schedule's IANA timezone. An empty timezone is
// rejected rather than defaulting to UTC.
func location(s models.WeeklySchedule) (*time.Location, error) {
	if s.Timezone == "" {
		return nil, fmt.Errorf("schedule has no timezone")
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// IsOpenAt reports whether the schedule is open at the given instant.
//
// The instant is converted to wall-clock weekday and time-of-day in the
// schedule's timezone. A disabled day is closed for its whole duration;
// otherwise the schedule is open iff the local time falls within any slot
// using half-open interval semantics [start, end).
//
// Repeated calls with identical arguments always return the same result.
func IsOpenAt(s models.WeeklySchedule, at time.Time) (bool, error) {
	loc, err := location(s)
	if err != nil {
		return false, err
	}

	local := at.In(loc)
	day := s.Days[int(local.Weekday())]
	if !day.Enabled {
		return false, nil
	}

	secondOfDay := local.Hour()*3600 + local.Minute()*60 + local.Second()
	for _, slot := range day.Slots {
		start, err := ParseClock(slot.Start)
		if err != nil {
			return false, err
		}
		end, err := ParseClock(slot.End)
		if err != nil {
			return false, err
		}

		if secondOfDay >= start*60 && secondOfDay < end*60 {
			return true, nil
		}
	}

	return false, nil
}

// NextOpenAt returns the next instant at or after `at` when the schedule is
// open, in absolute time.
//
// If the schedule is already open at `at`, `at` itself is returned. Otherwise
// the 7-day cycle is scanned forward starting at the current local day,
// examining each enabled day's slots in chronological start order, and the
// first slot start strictly after `at` is returned. If no enabled day
// carries a slot anywhere in the cycle, ok is false ("never") instead of an
// error.
//
// Local slot starts are materialized with time.Date in the schedule's zone,
// so daylight-saving transitions resolve the way the Go time package
// resolves them: nonexistent wall-clock times roll forward across the gap,
// ambiguous times take the zone's first occurrence.
func NextOpenAt(s models.WeeklySchedule, at time.Time) (next time.Time, ok bool, err error) {
	open, err := IsOpenAt(s, at)
	if err != nil {
		return time.Time{}, false, err
	}
	if open {
		return at, true, nil
	}

	if !s.HasOpenSlot() {
		return time.Time{}, false, nil
	}

	loc, err := location(s)
	if err != nil {
		return time.Time{}, false, err
	}

	local := at.In(loc)
	year, month, dayOfMonth := local.Date()

	// Offset 7 revisits the current weekday one week out, for the case
	// where today's only slots have already started.
	for offset := 0; offset <= 7; offset++ {
		candidate := time.Date(year, month, dayOfMonth+offset, 0, 0, 0, 0, loc)
		day := s.Days[int(candidate.Weekday())]
		if !day.Enabled || len(day.Slots) == 0 {
			continue
		}

		starts := make([]int, 0, len(day.Slots))
		for _, slot := range day.Slots {
			start, err := ParseClock(slot.Start)
			if err != nil {
				return time.Time{}, false, err
			}
			starts = append(starts, start)
		}
		sort.Ints(starts)

		for _, start := range starts {
			opensAt := time.Date(year, month, dayOfMonth+offset, start/60, start%60, 0, 0, loc)
			if opensAt.After(at) {
				return opensAt, true, nil
			}
		}
	}

	return time.Time{}, false, nil
}
