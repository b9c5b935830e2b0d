package api

import (
	"net/http"

	"github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/queries"
)

type recurringEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Pattern     string `json:"recurrence_pattern"`
	Weekdays    []int  `json:"days_of_week"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (r recurringEventRequest) input() commands.RecurringEventInput {
	return commands.RecurringEventInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Pattern:     r.Pattern,
		Weekdays:    r.Weekdays,
		ValidFrom:   r.StartDate,
		ValidUntil:  r.EndDate,
	}
}

// listRecurringEvents handles GET /api/recurring-events
func (s *Server) listRecurringEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.app.ListRecurringEventsHandler.Handle(r.Context(), queries.ListRecurringEventsQuery{})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// createRecurringEvent handles POST /api/recurring-events
func (s *Server) createRecurringEvent(w http.ResponseWriter, r *http.Request) {
	var req recurringEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := s.app.CreateRecurringEventHandler.Handle(r.Context(), commands.CreateRecurringEventCommand{
		RecurringEventInput: req.input(),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusCreated, map[string]any{"id": result.EventID})
}

// updateRecurringEvent handles PUT /api/recurring-events/{id}
func (s *Server) updateRecurringEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req recurringEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.UpdateRecurringEventHandler.Handle(r.Context(), commands.UpdateRecurringEventCommand{
		EventID:             id,
		RecurringEventInput: req.input(),
	}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// deleteRecurringEvent handles DELETE /api/recurring-events/{id}
func (s *Server) deleteRecurringEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.app.DeleteRecurringEventHandler.Handle(r.Context(), commands.DeleteRecurringEventCommand{EventID: id}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recurring event deleted successfully"})
}

// importCalendar handles POST /api/calendar/import with either the pasted
// export text or the URL of a published export.
func (s *Server) importCalendar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		URL    string `json:"url"`
		DryRun bool   `json:"dry_run"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := s.app.ImportCalendarHandler.Handle(r.Context(), commands.ImportCalendarCommand{
		Text:   req.Text,
		URL:    req.URL,
		DryRun: req.DryRun,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, result)
}
