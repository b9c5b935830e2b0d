package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// Reason explains why a task landed where it did.
type Reason string

const (
	ReasonEnergyMatch   Reason = "Optimal energy match"
	ReasonUrgent        Reason = "Urgent deadline"
	ReasonBestAvailable Reason = "Best available slot"
	ReasonManual        Reason = "Pinned manually"
)

// Assignment places a task on a date between two clock times. Assignments
// produced by the slot assigner are values; manual ones are persisted and
// replace any earlier assignment of the same task on the same date.
type Assignment struct {
	ID       uuid.UUID
	TaskID   uuid.UUID
	Title    string
	Date     time.Time
	Start    Clock
	End      Clock
	Energy   wellness.EnergyLevel
	Reason   Reason
	IsManual bool
}

// NewManualAssignment validates a user-pinned placement.
func NewManualAssignment(taskID uuid.UUID, date time.Time, start, end Clock, energy wellness.EnergyLevel) (Assignment, error) {
	if taskID == uuid.Nil {
		return Assignment{}, sharedDomain.InvalidInputf("task id is required")
	}
	if end.Minutes() <= start.Minutes() {
		return Assignment{}, sharedDomain.InvalidInputf("end %s must be after start %s", end, start)
	}
	if energy != "" && !energy.IsValid() {
		return Assignment{}, sharedDomain.InvalidInputf("unknown energy level %q", energy)
	}
	return Assignment{
		ID:       uuid.New(),
		TaskID:   taskID,
		Date:     DateOf(date),
		Start:    start,
		End:      end,
		Energy:   energy,
		Reason:   ReasonManual,
		IsManual: true,
	}, nil
}

// Hours is the span of grid hours the assignment touches. A partial last
// hour counts as taken.
func (a Assignment) Hours() HourRange {
	end := a.End.Hour
	if a.End.Minute > 0 {
		end++
	}
	return HourRange{Start: a.Start.Hour, End: min(end, HoursPerDay)}
}

// Overlaps reports whether two assignments on the same date share any time.
func (a Assignment) Overlaps(b Assignment) bool {
	if !a.Date.Equal(b.Date) {
		return false
	}
	return a.Start.Minutes() < b.End.Minutes() && b.Start.Minutes() < a.End.Minutes()
}
