package domain

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

// Observation is one entry of the append-only energy log.
type Observation struct {
	ID         uuid.UUID
	Weekday    time.Weekday
	Hour       int
	Level      EnergyLevel
	RecordedAt time.Time
}

// NewObservation validates and stamps an observation.
func NewObservation(weekday, hour int, level EnergyLevel, recordedAt time.Time) (Observation, error) {
	if weekday < 0 || weekday > 6 {
		return Observation{}, InvalidWeekday(weekday)
	}
	if hour < 0 || hour > 23 {
		return Observation{}, domain.InvalidInputf("hour %d out of range 0-23", hour)
	}
	if !level.IsValid() {
		return Observation{}, domain.InvalidInputf("unknown energy level %q", level)
	}
	return Observation{
		ID:         uuid.New(),
		Weekday:    time.Weekday(weekday),
		Hour:       hour,
		Level:      level,
		RecordedAt: recordedAt.UTC(),
	}, nil
}

// ObservationAt derives the weekday and hour from a wall-clock time in its
// own location.
func ObservationAt(at time.Time, level EnergyLevel) (Observation, error) {
	return NewObservation(int(at.Weekday()), at.Hour(), level, at)
}

// InvalidWeekday reports a day number outside 0 (Sunday) to 6 (Saturday).
func InvalidWeekday(weekday int) error {
	return domain.InvalidInputf("weekday %d out of range 0-6", weekday)
}
