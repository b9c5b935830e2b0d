package services

import (
	"time"

	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// SchedulableTask is the read-only view of a task the scheduler works on.
type SchedulableTask struct {
	ID             uuid.UUID
	Title          string
	Category       task.Category
	Priority       value_objects.Priority
	Status         task.Status
	DueDate        *time.Time
	EstimatedHours *float64
	Energy         *wellness.EnergyLevel
}

// SchedulableTaskFrom copies the fields the scheduler reads.
func SchedulableTaskFrom(t *task.Task) SchedulableTask {
	st := SchedulableTask{
		ID:       t.ID(),
		Title:    t.Title(),
		Category: t.Category(),
		Priority: t.Priority(),
		Status:   t.Status(),
		DueDate:  t.DueDate(),
		Energy:   t.EnergyPreference(),
	}
	if h := t.EstimatedHours(); h != nil {
		v := h.Float()
		st.EstimatedHours = &v
	}
	return st
}

// RequiredSlots is the number of one-hour slots the task needs: the
// estimate rounded up, at least one, and one when there is no estimate.
func (t SchedulableTask) RequiredSlots() int {
	if t.EstimatedHours == nil {
		return 1
	}
	return value_objects.Hours(*t.EstimatedHours).WholeHours()
}

// Snapshot is everything schedule generation reads. Callers load it in one
// consistent read; the engine never writes. Pinned hours are unavailable to
// generated assignments.
type Snapshot struct {
	Sleep  *schedulingDomain.SleepSchedule
	Events []*calendarDomain.RecurringEvent
	Pinned []schedulingDomain.Assignment
	Tasks  []SchedulableTask
	Energy *wellness.Histogram
}

// ScheduleResult is a generated day plan.
type ScheduleResult struct {
	Date               time.Time
	Weekday            time.Weekday
	Sleep              *schedulingDomain.SleepSchedule
	RecurringEvents    []*calendarDomain.RecurringEvent
	FreeSlots          []schedulingDomain.Slot
	Assignments        []schedulingDomain.Assignment
	TotalAssignedTasks int
	TotalAssignedHours int
}

// SchedulerConfig tunes the scheduler.
type SchedulerConfig struct {
	// UrgencyHorizonDays is how close a due date must be for a task to sort
	// ahead of higher priorities.
	UrgencyHorizonDays int
}

// DefaultSchedulerConfig returns the standard three-day horizon.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{UrgencyHorizonDays: 3}
}

// SchedulerEngine builds day plans from snapshots.
type SchedulerEngine struct {
	config SchedulerConfig
}

// NewSchedulerEngine creates an engine.
func NewSchedulerEngine(config SchedulerConfig) *SchedulerEngine {
	if config.UrgencyHorizonDays <= 0 {
		config.UrgencyHorizonDays = DefaultSchedulerConfig().UrgencyHorizonDays
	}
	return &SchedulerEngine{config: config}
}

// Generate plans the target date: free slots first, then tasks ordered by
// urgency and priority, then greedy placement. Tasks that do not fit are
// left out of the result.
func (e *SchedulerEngine) Generate(date time.Time, snap Snapshot, now time.Time) (*ScheduleResult, error) {
	if date.IsZero() {
		return nil, sharedDomain.InvalidInputf("target date is required")
	}
	for _, t := range snap.Tasks {
		if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
			return nil, sharedDomain.InvalidInputf("task %s has a negative estimate", t.ID)
		}
		if !t.Priority.IsValid() {
			return nil, sharedDomain.InvalidInputf("task %s has an unknown priority", t.ID)
		}
		if t.Energy != nil && !t.Energy.IsValid() {
			return nil, sharedDomain.InvalidInputf("task %s has an unknown energy level", t.ID)
		}
	}

	date = schedulingDomain.DateOf(date)
	histogram := snap.Energy
	if histogram == nil {
		histogram = wellness.NewHistogram(nil)
	}

	slots := FreeSlots(date, snap.Sleep, snap.Events, snap.Pinned, histogram, now)
	ordered := e.Prioritize(snap.Tasks, date)
	assignments, hours := e.Assign(slots, ordered, date)

	result := &ScheduleResult{
		Date:               date,
		Weekday:            date.Weekday(),
		Sleep:              snap.Sleep,
		RecurringEvents:    ApplicableEvents(date, snap.Events),
		FreeSlots:          slots,
		Assignments:        assignments,
		TotalAssignedTasks: len(assignments),
		TotalAssignedHours: hours,
	}
	return result, nil
}
