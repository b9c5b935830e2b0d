package domain

import (
	"math"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// SleepSchedule is the single, user-wide sleep preference. Saving replaces
// it wholesale.
type SleepSchedule struct {
	Bedtime      Clock
	WakeTime     Clock
	DesiredHours float64
	// Optimize and Flexible are stored preferences. The scheduler does not
	// act on them.
	Optimize bool
	Flexible bool
}

// NewSleepSchedule validates a sleep preference.
func NewSleepSchedule(bedtime, wake string, desiredHours float64, optimize, flexible bool) (SleepSchedule, error) {
	bed, err := ParseClock(bedtime)
	if err != nil {
		return SleepSchedule{}, err
	}
	up, err := ParseClock(wake)
	if err != nil {
		return SleepSchedule{}, err
	}
	if math.IsNaN(desiredHours) || desiredHours < 0 || desiredHours > HoursPerDay {
		return SleepSchedule{}, sharedDomain.InvalidInputf("desired sleep hours %v out of range 0-24", desiredHours)
	}
	return SleepSchedule{
		Bedtime:      bed,
		WakeTime:     up,
		DesiredHours: desiredHours,
		Optimize:     optimize,
		Flexible:     flexible,
	}, nil
}

// Ranges returns the sleep hours on the grid, split when sleep crosses
// midnight.
func (s SleepSchedule) Ranges() []HourRange {
	return SplitWindow(s.Bedtime.Hour, s.WakeTime.Hour)
}

// IsOvernight reports whether bedtime is later in the day than waking up.
func (s SleepSchedule) IsOvernight() bool {
	return s.Bedtime.Minutes() > s.WakeTime.Minutes()
}
