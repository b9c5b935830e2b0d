package queries

import (
	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// SleepDTO is the stored sleep preference.
type SleepDTO struct {
	Bedtime      string  `json:"bedtime"`
	WakeTime     string  `json:"wake_time"`
	DesiredHours float64 `json:"desired_hours"`
	Optimize     bool    `json:"optimize"`
	Flexible     bool    `json:"flexible"`
}

// ToSleepDTO converts a sleep schedule; nil stays nil.
func ToSleepDTO(s *schedulingDomain.SleepSchedule) *SleepDTO {
	if s == nil {
		return nil
	}
	return &SleepDTO{
		Bedtime:      s.Bedtime.String(),
		WakeTime:     s.WakeTime.String(),
		DesiredHours: s.DesiredHours,
		Optimize:     s.Optimize,
		Flexible:     s.Flexible,
	}
}

// EventDTO is a recurring event applicable on the scheduled date.
type EventDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"title"`
	Category  string    `json:"type"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Pattern   string    `json:"recurrence_pattern"`
}

func toEventDTO(e *calendarDomain.RecurringEvent) EventDTO {
	return EventDTO{
		ID:        e.ID(),
		Name:      e.Name(),
		Category:  string(e.Category()),
		StartTime: e.Start().String(),
		EndTime:   e.End().String(),
		Pattern:   string(e.Pattern()),
	}
}

// SlotDTO is one free hour.
type SlotDTO struct {
	Time        string `json:"time"`
	Hour        int    `json:"hour"`
	EnergyLevel string `json:"energy_level"`
}

// AssignmentDTO is a task placed on the day, generated or pinned.
type AssignmentDTO struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	Title       string    `json:"title"`
	Date        string    `json:"scheduled_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	EnergyLevel string    `json:"energy_level,omitempty"`
	Reason      string    `json:"reason"`
	IsManual    bool      `json:"is_manual"`
}

// ToAssignmentDTO converts an assignment.
func ToAssignmentDTO(a schedulingDomain.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID,
		TaskID:      a.TaskID,
		Title:       a.Title,
		Date:        a.Date.Format(schedulingDomain.DateLayout),
		StartTime:   a.Start.String(),
		EndTime:     a.End.String(),
		EnergyLevel: string(a.Energy),
		Reason:      string(a.Reason),
		IsManual:    a.IsManual,
	}
}

func toAssignmentDTOs(as []schedulingDomain.Assignment) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(as))
	for _, a := range as {
		out = append(out, ToAssignmentDTO(a))
	}
	return out
}

// ScheduleDTO is a generated day plan with its timeline.
type ScheduleDTO struct {
	Date               string                   `json:"date"`
	Weekday            string                   `json:"day_of_week"`
	Sleep              *SleepDTO                `json:"sleep_schedule"`
	RecurringEvents    []EventDTO               `json:"recurring_events"`
	FreeSlots          []SlotDTO                `json:"available_slots"`
	Assignments        []AssignmentDTO          `json:"scheduled_tasks"`
	Pinned             []AssignmentDTO          `json:"manual_tasks"`
	Timeline           []services.TimelineEntry `json:"timeline"`
	TotalAssignedTasks int                      `json:"total_scheduled_tasks"`
	TotalAssignedHours int                      `json:"total_scheduled_hours"`
}

func toScheduleDTO(p *Plan) ScheduleDTO {
	r := p.Result
	dto := ScheduleDTO{
		Date:               r.Date.Format(schedulingDomain.DateLayout),
		Weekday:            r.Weekday.String(),
		Sleep:              ToSleepDTO(r.Sleep),
		RecurringEvents:    make([]EventDTO, 0, len(r.RecurringEvents)),
		FreeSlots:          make([]SlotDTO, 0, len(r.FreeSlots)),
		Assignments:        toAssignmentDTOs(r.Assignments),
		Pinned:             toAssignmentDTOs(p.Pinned),
		Timeline:           services.BuildTimeline(r, p.Pinned),
		TotalAssignedTasks: r.TotalAssignedTasks,
		TotalAssignedHours: r.TotalAssignedHours,
	}
	for _, e := range r.RecurringEvents {
		dto.RecurringEvents = append(dto.RecurringEvents, toEventDTO(e))
	}
	for _, s := range r.FreeSlots {
		dto.FreeSlots = append(dto.FreeSlots, SlotDTO{Time: s.Time(), Hour: s.Hour, EnergyLevel: string(s.Energy)})
	}
	return dto
}
