package services

import (
	"sort"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// EntryKind labels a timeline row.
type EntryKind string

const (
	EntrySleep  EntryKind = "sleep"
	EntryEvent  EntryKind = "recurring_event"
	EntryTask   EntryKind = "task"
	EntryPinned EntryKind = "pinned_task"
)

// TimelineEntry is one row of the rendered day.
type TimelineEntry struct {
	Kind   EntryKind `json:"type"`
	Start  string    `json:"start_time"`
	End    string    `json:"end_time"`
	Title  string    `json:"title"`
	Meta   string    `json:"meta,omitempty"`
	Energy string    `json:"energy_level,omitempty"`
}

// BuildTimeline merges sleep, recurring events, generated assignments and
// pinned assignments into one list ordered by "HH:MM" start text. Overnight
// sleep renders as two rows, bedtime to 23:59 and 00:00 to wake time.
func BuildTimeline(result *ScheduleResult, pinned []schedulingDomain.Assignment) []TimelineEntry {
	var entries []TimelineEntry

	if s := result.Sleep; s != nil {
		if s.IsOvernight() {
			entries = append(entries,
				TimelineEntry{Kind: EntrySleep, Start: s.Bedtime.String(), End: "23:59", Title: "Sleep"},
				TimelineEntry{Kind: EntrySleep, Start: "00:00", End: s.WakeTime.String(), Title: "Sleep"},
			)
		} else {
			entries = append(entries, TimelineEntry{Kind: EntrySleep, Start: s.Bedtime.String(), End: s.WakeTime.String(), Title: "Sleep"})
		}
	}

	for _, e := range result.RecurringEvents {
		entries = append(entries, TimelineEntry{
			Kind:  EntryEvent,
			Start: e.Start().String(),
			End:   e.End().String(),
			Title: e.Name(),
			Meta:  string(e.Pattern()),
		})
	}

	for _, a := range result.Assignments {
		entries = append(entries, assignmentEntry(EntryTask, a))
	}
	for _, a := range pinned {
		entries = append(entries, assignmentEntry(EntryPinned, a))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })
	return entries
}

func assignmentEntry(kind EntryKind, a schedulingDomain.Assignment) TimelineEntry {
	return TimelineEntry{
		Kind:   kind,
		Start:  a.Start.String(),
		End:    a.End.String(),
		Title:  a.Title,
		Meta:   string(a.Reason),
		Energy: string(a.Energy),
	}
}
