package domain

import (
	"fmt"
	"strconv"
	"strings"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// HoursPerDay is the size of the daily slot grid.
const HoursPerDay = 24

// Clock is a wall-clock time with minute precision. Scheduling only looks
// at the hour; minutes are kept for display.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (a single-digit hour and a trailing ":SS" are
// accepted).
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, sharedDomain.InvalidInputf("time %q is not HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 || len(parts[0]) > 2 {
		return Clock{}, sharedDomain.InvalidInputf("time %q has an invalid hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return Clock{}, sharedDomain.InvalidInputf("time %q has an invalid minute", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders zero-padded "HH:MM", which keeps lexical and
// chronological order identical.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

// ParseHour parses "HH:MM" into an hour of the slot grid, dropping minutes.
func ParseHour(s string) (int, error) {
	c, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return c.Hour, nil
}

// FormatHour renders an hour of the grid as "HH:00". Hour 24 renders as
// "24:00" and marks the end of the day.
func FormatHour(hour int) string {
	return Clock{Hour: hour}.String()
}

// HourRange is the half-open interval [Start, End) on the hour grid.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether hour lies in the range.
func (r HourRange) Contains(hour int) bool {
	return hour >= r.Start && hour < r.End
}

// SplitWindow turns a possibly overnight window into non-wrapping ranges.
// A window that starts after it ends (23 to 7) becomes [23,24) and [0,7);
// equal endpoints yield no range.
func SplitWindow(start, end int) []HourRange {
	switch {
	case start < end:
		return []HourRange{{Start: start, End: end}}
	case start > end:
		ranges := []HourRange{{Start: start, End: HoursPerDay}}
		if end > 0 {
			ranges = append(ranges, HourRange{Start: 0, End: end})
		}
		return ranges
	default:
		return nil
	}
}
