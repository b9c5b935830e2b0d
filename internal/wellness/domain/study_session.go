package domain

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

// StudySession records a block of focused work and how it went.
type StudySession struct {
	domain.BaseAggregateRoot
	taskID             *uuid.UUID
	start              time.Time
	end                time.Time
	durationMinutes    int
	energy             EnergyLevel
	productivityRating int
}

// NewStudySession validates a session. The duration is derived from the
// start and end times, and the session start also becomes an energy
// observation for the histogram.
func NewStudySession(taskID *uuid.UUID, start, end time.Time, energy EnergyLevel, rating int) (*StudySession, error) {
	if !end.After(start) {
		return nil, domain.InvalidInputf("session end %s must be after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if !energy.IsValid() {
		return nil, domain.InvalidInputf("unknown energy level %q", energy)
	}
	if rating < 1 || rating > 5 {
		return nil, domain.InvalidInputf("productivity rating %d out of range 1-5", rating)
	}

	s := &StudySession{
		BaseAggregateRoot:  domain.NewBaseAggregateRoot(),
		taskID:             taskID,
		start:              start,
		end:                end,
		durationMinutes:    int(end.Sub(start) / time.Minute),
		energy:             energy,
		productivityRating: rating,
	}
	s.AddDomainEvent(NewSessionRecorded(s))
	return s, nil
}

// RehydrateStudySession rebuilds a stored session.
func RehydrateStudySession(id uuid.UUID, taskID *uuid.UUID, start, end time.Time, minutes int, energy EnergyLevel, rating int) *StudySession {
	return &StudySession{
		BaseAggregateRoot:  domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, start, end)),
		taskID:             taskID,
		start:              start,
		end:                end,
		durationMinutes:    minutes,
		energy:             energy,
		productivityRating: rating,
	}
}

func (s *StudySession) TaskID() *uuid.UUID      { return s.taskID }
func (s *StudySession) Start() time.Time        { return s.start }
func (s *StudySession) End() time.Time          { return s.end }
func (s *StudySession) DurationMinutes() int    { return s.durationMinutes }
func (s *StudySession) Energy() EnergyLevel     { return s.energy }
func (s *StudySession) ProductivityRating() int { return s.productivityRating }

// Observation is the energy log entry implied by the session.
func (s *StudySession) Observation() Observation {
	o, _ := ObservationAt(s.start, s.energy)
	return o
}
