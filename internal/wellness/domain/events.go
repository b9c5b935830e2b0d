package domain

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateTypeEnergy       = "EnergyLog"
	AggregateTypeStudySession = "StudySession"

	RoutingKeyEnergyRecorded  = "energy.recorded"
	RoutingKeySessionRecorded = "session.recorded"
)

// EnergyRecorded is raised when an observation is appended to the log.
type EnergyRecorded struct {
	domain.BaseEvent
	Weekday int         `json:"weekday"`
	Hour    int         `json:"hour"`
	Level   EnergyLevel `json:"level"`
}

// NewEnergyRecorded creates an EnergyRecorded event.
func NewEnergyRecorded(o Observation) *EnergyRecorded {
	return &EnergyRecorded{
		BaseEvent: domain.NewBaseEvent(o.ID, AggregateTypeEnergy, RoutingKeyEnergyRecorded),
		Weekday:   int(o.Weekday),
		Hour:      o.Hour,
		Level:     o.Level,
	}
}

// SessionRecorded is raised when a study session is logged.
type SessionRecorded struct {
	domain.BaseEvent
	TaskID          *uuid.UUID `json:"task_id,omitempty"`
	Start           time.Time  `json:"start"`
	DurationMinutes int        `json:"duration_minutes"`
	Rating          int        `json:"productivity_rating"`
}

// NewSessionRecorded creates a SessionRecorded event.
func NewSessionRecorded(s *StudySession) *SessionRecorded {
	return &SessionRecorded{
		BaseEvent:       domain.NewBaseEvent(s.ID(), AggregateTypeStudySession, RoutingKeySessionRecorded),
		TaskID:          s.taskID,
		Start:           s.start,
		DurationMinutes: s.durationMinutes,
		Rating:          s.productivityRating,
	}
}
