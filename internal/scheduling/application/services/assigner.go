package services

import (
	"time"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// Assign walks the free slots with a single forward cursor and gives each
// task a run of consecutive slots. A task with an energy preference starts
// at the first matching slot after the cursor when its whole run fits there,
// otherwise at the cursor. Tasks whose run does not fit are skipped and the
// cursor stays put for the next task. Slots passed over to reach a match
// are not offered again.
//
// It returns the assignments and the number of slots they consumed.
func (e *SchedulerEngine) Assign(slots []schedulingDomain.Slot, tasks []SchedulableTask, date time.Time) ([]schedulingDomain.Assignment, int) {
	var (
		assignments []schedulingDomain.Assignment
		used        int
		cursor      int
	)

	for _, t := range tasks {
		if cursor >= len(slots) {
			break
		}

		required := t.RequiredSlots()
		start := cursor

		if t.Energy != nil {
			for i := cursor; i < len(slots); i++ {
				if slots[i].Energy == *t.Energy {
					if i+required <= len(slots) {
						start = i
					}
					break
				}
			}
		}

		if start+required > len(slots) {
			continue
		}

		first, last := slots[start], slots[start+required-1]
		assignments = append(assignments, schedulingDomain.Assignment{
			ID:     uuid.New(),
			TaskID: t.ID,
			Title:  t.Title,
			Date:   date,
			Start:  schedulingDomain.Clock{Hour: first.Hour},
			End:    schedulingDomain.Clock{Hour: last.Hour + 1},
			Energy: first.Energy,
			Reason: e.reason(t, first, date),
		})
		used += required
		cursor = start + required
	}

	return assignments, used
}

func (e *SchedulerEngine) reason(t SchedulableTask, first schedulingDomain.Slot, date time.Time) schedulingDomain.Reason {
	switch {
	case t.Energy != nil && *t.Energy == first.Energy:
		return schedulingDomain.ReasonEnergyMatch
	case t.DueDate != nil && schedulingDomain.DaysBetween(date, *t.DueDate) < e.config.UrgencyHorizonDays:
		return schedulingDomain.ReasonUrgent
	default:
		return schedulingDomain.ReasonBestAvailable
	}
}
