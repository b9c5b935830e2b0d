package services

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// IsUrgent reports whether a task is due between the target date and the
// end of the urgency horizon. Undated and overdue tasks are not urgent.
func (e *SchedulerEngine) IsUrgent(t SchedulableTask, date time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	days := schedulingDomain.DaysBetween(date, *t.DueDate)
	return days >= 0 && days <= e.config.UrgencyHorizonDays
}

// Prioritize drops completed tasks and orders the rest: urgent before not
// urgent, then high before medium before low. Ties keep input order.
func (e *SchedulerEngine) Prioritize(tasks []SchedulableTask, date time.Time) []SchedulableTask {
	out := make([]SchedulableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != task.StatusCompleted {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ui, uj := e.IsUrgent(out[i], date), e.IsUrgent(out[j], date)
		if ui != uj {
			return ui
		}
		return out[i].Priority.Weight() > out[j].Priority.Weight()
	})
	return out
}
