package services

import (
	"time"

	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
)

// ApplicableEvents keeps the events that occur on the date's weekday, in
// input order.
func ApplicableEvents(date time.Time, events []*calendarDomain.RecurringEvent) []*calendarDomain.RecurringEvent {
	weekday := date.Weekday()
	out := make([]*calendarDomain.RecurringEvent, 0, len(events))
	for _, e := range events {
		if e.AppliesOn(weekday) {
			out = append(out, e)
		}
	}
	return out
}

// FreeSlots lists the free hours of date, earliest first. An hour is not
// free if it falls inside the sleep window, inside [start, end) of an
// applicable recurring event, under a pinned assignment on date, or, when
// date is today, at or before the current hour. Each free hour carries the
// histogram's dominant level for that weekday and hour.
func FreeSlots(
	date time.Time,
	sleep *schedulingDomain.SleepSchedule,
	events []*calendarDomain.RecurringEvent,
	pinned []schedulingDomain.Assignment,
	energy *wellness.Histogram,
	now time.Time,
) []schedulingDomain.Slot {
	var blocked [schedulingDomain.HoursPerDay]bool

	if sleep != nil {
		for _, r := range sleep.Ranges() {
			for h := r.Start; h < r.End; h++ {
				blocked[h] = true
			}
		}
	}

	for _, e := range ApplicableEvents(date, events) {
		for h := range blocked {
			if e.Blocks(h) {
				blocked[h] = true
			}
		}
	}

	for _, a := range pinned {
		if !schedulingDomain.SameDate(a.Date, date) {
			continue
		}
		r := a.Hours()
		for h := range blocked {
			if r.Contains(h) {
				blocked[h] = true
			}
		}
	}

	if schedulingDomain.SameDate(date, now) {
		for h := 0; h <= now.Hour(); h++ {
			blocked[h] = true
		}
	}

	weekday := date.Weekday()
	slots := make([]schedulingDomain.Slot, 0, schedulingDomain.HoursPerDay)
	for h, taken := range blocked {
		if taken {
			continue
		}
		slots = append(slots, schedulingDomain.Slot{Hour: h, Energy: energy.Dominant(weekday, h)})
	}
	return slots
}
