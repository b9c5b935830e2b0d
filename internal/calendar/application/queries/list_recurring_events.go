package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/calendar/domain"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// RecurringEventDTO is a data transfer object for recurring events.
type RecurringEventDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Pattern     string    `json:"recurrence_pattern"`
	Weekdays    []int     `json:"days_of_week"`
	ValidFrom   string    `json:"start_date,omitempty"`
	ValidUntil  string    `json:"end_date,omitempty"`
}

// ToRecurringEventDTO converts a domain event.
func ToRecurringEventDTO(e *domain.RecurringEvent) RecurringEventDTO {
	return RecurringEventDTO{
		ID:          e.ID(),
		Name:        e.Name(),
		Description: e.Description(),
		Category:    string(e.Category()),
		StartTime:   e.Start().String(),
		EndTime:     e.End().String(),
		Pattern:     string(e.Pattern()),
		Weekdays:    e.Weekdays().Ints(),
		ValidFrom:   formatDate(e.ValidFrom()),
		ValidUntil:  formatDate(e.ValidUntil()),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(schedulingDomain.DateLayout)
}

// ListRecurringEventsQuery optionally restricts the list to one weekday.
type ListRecurringEventsQuery struct {
	Weekday *int
}

// ListRecurringEventsHandler handles ListRecurringEventsQuery.
type ListRecurringEventsHandler struct {
	eventRepo domain.RecurringEventRepository
}

// NewListRecurringEventsHandler creates a new ListRecurringEventsHandler.
func NewListRecurringEventsHandler(eventRepo domain.RecurringEventRepository) *ListRecurringEventsHandler {
	return &ListRecurringEventsHandler{eventRepo: eventRepo}
}

// Handle returns events ordered by start time.
func (h *ListRecurringEventsHandler) Handle(ctx context.Context, query ListRecurringEventsQuery) ([]RecurringEventDTO, error) {
	events, err := h.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RecurringEventDTO, 0, len(events))
	for _, e := range events {
		if query.Weekday != nil && !e.AppliesOn(time.Weekday(*query.Weekday)) {
			continue
		}
		out = append(out, ToRecurringEventDTO(e))
	}
	return out, nil
}
