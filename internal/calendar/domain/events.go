package domain

import (
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateTypeRecurringEvent = "RecurringEvent"
	AggregateTypeCalendarImport = "CalendarImport"

	RoutingKeyEventSaved   = "calendar.event.saved"
	RoutingKeyEventDeleted = "calendar.event.deleted"
	RoutingKeyImported     = "calendar.imported"
)

// RecurringEventSaved is emitted on create and update.
type RecurringEventSaved struct {
	sharedDomain.BaseEvent
	Name    string  `json:"name"`
	Pattern Pattern `json:"pattern"`
	Start   string  `json:"start_time"`
	End     string  `json:"end_time"`
	Days    []int   `json:"days_of_week,omitempty"`
}

func NewRecurringEventSaved(e *RecurringEvent) *RecurringEventSaved {
	return &RecurringEventSaved{
		BaseEvent: sharedDomain.NewBaseEvent(e.ID(), AggregateTypeRecurringEvent, RoutingKeyEventSaved),
		Name:      e.name,
		Pattern:   e.pattern,
		Start:     e.start.String(),
		End:       e.end.String(),
		Days:      e.weekdays.Ints(),
	}
}

// RecurringEventDeleted is emitted when an event is removed.
type RecurringEventDeleted struct {
	sharedDomain.BaseEvent
}

func NewRecurringEventDeleted(id uuid.UUID) *RecurringEventDeleted {
	return &RecurringEventDeleted{BaseEvent: sharedDomain.NewBaseEvent(id, AggregateTypeRecurringEvent, RoutingKeyEventDeleted)}
}

// CalendarImported summarises an import run.
type CalendarImported struct {
	sharedDomain.BaseEvent
	Source   string `json:"source"`
	Blocks   int    `json:"blocks"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

func NewCalendarImported(importID uuid.UUID, source string, blocks, imported, skipped int) *CalendarImported {
	return &CalendarImported{
		BaseEvent: sharedDomain.NewBaseEvent(importID, AggregateTypeCalendarImport, RoutingKeyImported),
		Source:    source,
		Blocks:    blocks,
		Imported:  imported,
		Skipped:   skipped,
	}
}
