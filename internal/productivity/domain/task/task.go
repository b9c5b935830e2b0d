package task

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = domain.InvalidInputf("task title cannot be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
)

// Task is a unit of study or work the planner can schedule.
type Task struct {
	domain.BaseAggregateRoot
	title          string
	description    string
	category       Category
	priority       value_objects.Priority
	status         Status
	dueDate        *time.Time
	estimatedHours *value_objects.Hours
	energy         *wellness.EnergyLevel
	completedHours float64
	completedAt    *time.Time
	subtasks       []Subtask
}

// NewTask creates a pending task. When the estimate is large enough the
// project phases are added as subtasks.
func NewTask(title string, category Category, priority value_objects.Priority, estimatedHours *value_objects.Hours) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return nil, domain.InvalidInputf("unknown priority %d", priority)
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		title:             title,
		category:          category,
		priority:          priority,
		status:            StatusPending,
		estimatedHours:    estimatedHours,
	}

	if estimatedHours != nil {
		for _, phase := range PlanPhases(estimatedHours.Float()) {
			if _, err := t.AddSubtask(phase); err != nil {
				return nil, err
			}
		}
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title, t.priority.String(), len(t.subtasks)))
	return t, nil
}

// Snapshot holds every persisted field of a task.
type Snapshot struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Category       Category
	Priority       value_objects.Priority
	Status         Status
	DueDate        *time.Time
	EstimatedHours *value_objects.Hours
	Energy         *wellness.EnergyLevel
	CompletedHours float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	Subtasks       []Subtask
}

// Rehydrate rebuilds a stored task without raising events.
func Rehydrate(s Snapshot) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(s.ID, s.CreatedAt, s.UpdatedAt)),
		title:             s.Title,
		description:       s.Description,
		category:          s.Category,
		priority:          s.Priority,
		status:            s.Status,
		dueDate:           s.DueDate,
		estimatedHours:    s.EstimatedHours,
		energy:            s.Energy,
		completedHours:    s.CompletedHours,
		completedAt:       s.CompletedAt,
		subtasks:          s.Subtasks,
	}
}

func (t *Task) Title() string                          { return t.title }
func (t *Task) Description() string                    { return t.description }
func (t *Task) Category() Category                     { return t.category }
func (t *Task) Priority() value_objects.Priority       { return t.priority }
func (t *Task) Status() Status                         { return t.status }
func (t *Task) DueDate() *time.Time                    { return t.dueDate }
func (t *Task) EstimatedHours() *value_objects.Hours   { return t.estimatedHours }
func (t *Task) EnergyPreference() *wellness.EnergyLevel { return t.energy }
func (t *Task) CompletedHours() float64                { return t.completedHours }
func (t *Task) CompletedAt() *time.Time                { return t.completedAt }
func (t *Task) IsCompleted() bool                      { return t.status == StatusCompleted }

// Subtasks returns the steps ordered by index.
func (t *Task) Subtasks() []Subtask {
	out := make([]Subtask, len(t.subtasks))
	copy(out, t.subtasks)
	return out
}

// IsOverdue reports whether an open task's due date falls before the given day.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.IsCompleted() || t.dueDate == nil {
		return false
	}
	y, m, d := today.Date()
	return t.dueDate.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location()))
}

// Update describes a partial change; nil fields are left alone.
type Update struct {
	Title          *string
	Description    *string
	Category       *Category
	Priority       *value_objects.Priority
	Status         *Status
	DueDate        **time.Time
	EstimatedHours **value_objects.Hours
	Energy         **wellness.EnergyLevel
	CompletedHours *float64
}

// Apply changes the given fields and raises a single TaskUpdated listing them.
func (t *Task) Apply(u Update) error {
	var fields []string

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		t.title = title
		fields = append(fields, "title")
	}
	if u.Description != nil {
		t.description = strings.TrimSpace(*u.Description)
		fields = append(fields, "description")
	}
	if u.Category != nil {
		t.category = *u.Category
		fields = append(fields, "category")
	}
	if u.Priority != nil {
		if !u.Priority.IsValid() {
			return domain.InvalidInputf("unknown priority %d", *u.Priority)
		}
		t.priority = *u.Priority
		fields = append(fields, "priority")
	}
	if u.DueDate != nil {
		t.dueDate = *u.DueDate
		fields = append(fields, "due_date")
	}
	if u.EstimatedHours != nil {
		t.estimatedHours = *u.EstimatedHours
		fields = append(fields, "estimated_hours")
	}
	if u.Energy != nil {
		t.energy = *u.Energy
		fields = append(fields, "energy_level")
	}
	if u.CompletedHours != nil {
		if *u.CompletedHours < 0 {
			return domain.InvalidInputf("completed hours must be non-negative")
		}
		t.completedHours = *u.CompletedHours
		fields = append(fields, "completed_hours")
	}
	if u.Status != nil {
		t.setStatus(*u.Status)
		fields = append(fields, "status")
	}

	if len(fields) == 0 {
		return nil
	}
	t.Touch()
	t.AddDomainEvent(NewTaskUpdated(t.ID(), fields))
	return nil
}

// SetDueDate sets or clears the due date.
func (t *Task) SetDueDate(due *time.Time) {
	t.dueDate = due
	t.Touch()
}

// SetEnergyPreference sets or clears the preferred energy level.
func (t *Task) SetEnergyPreference(level *wellness.EnergyLevel) {
	t.energy = level
	t.Touch()
}

// SetDescription replaces the description.
func (t *Task) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
	t.Touch()
}

// Complete marks the task done.
func (t *Task) Complete() {
	t.setStatus(StatusCompleted)
	t.Touch()
	t.AddDomainEvent(NewTaskUpdated(t.ID(), []string{"status"}))
}

func (t *Task) setStatus(status Status) {
	switch {
	case status == StatusCompleted && t.status != StatusCompleted:
		now := time.Now().UTC()
		t.completedAt = &now
	case status != StatusCompleted:
		t.completedAt = nil
	}
	t.status = status
}

// MarkDeleted records the deletion so subscribers can react to it.
func (t *Task) MarkDeleted() {
	t.AddDomainEvent(NewTaskDeleted(t.ID()))
}
