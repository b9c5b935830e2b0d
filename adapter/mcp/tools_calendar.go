package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/queries"
)

type eventInput struct {
	Name        string `json:"name" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	StartTime   string `json:"start_time" jsonschema:"required"`
	EndTime     string `json:"end_time" jsonschema:"required"`
	Pattern     string `json:"recurrence_pattern,omitempty"`
	Weekdays    []int  `json:"days_of_week,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

func (in eventInput) toCommand() commands.RecurringEventInput {
	return commands.RecurringEventInput{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Pattern:     in.Pattern,
		Weekdays:    in.Weekdays,
		ValidFrom:   in.StartDate,
		ValidUntil:  in.EndDate,
	}
}

type eventUpdateInput struct {
	EventID string `json:"event_id" jsonschema:"required"`
	eventInput
}

type eventIDInput struct {
	EventID string `json:"event_id" jsonschema:"required"`
}

type eventListInput struct {
	Weekday *int `json:"day_of_week,omitempty"`
}

type calendarImportInput struct {
	Text   string `json:"text,omitempty"`
	URL    string `json:"url,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

func registerCalendarTools(srv *mcp.Server, t toolset) {
	srv.Tool("event.create").
		Description("Create a recurring event such as a class or a work shift").
		Handler(t.createEvent)

	srv.Tool("event.list").
		Description("List recurring events, optionally only those on a weekday (0 = Sunday)").
		Handler(t.listEvents)

	srv.Tool("event.update").
		Description("Replace the details of a recurring event").
		Handler(t.updateEvent)

	srv.Tool("event.delete").
		Description("Delete a recurring event").
		Handler(t.deleteEvent)

	srv.Tool("calendar.import").
		Description("Import recurring events from iCalendar text or the URL of a published calendar").
		Handler(t.importCalendar)
}

func (t toolset) createEvent(ctx context.Context, input eventInput) (map[string]any, error) {
	result, err := t.app.CreateRecurringEventHandler.Handle(ctx, commands.CreateRecurringEventCommand{
		RecurringEventInput: input.toCommand(),
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"id": result.EventID}, nil
}

func (t toolset) listEvents(ctx context.Context, input eventListInput) ([]queries.RecurringEventDTO, error) {
	return t.app.ListRecurringEventsHandler.Handle(ctx, queries.ListRecurringEventsQuery{Weekday: input.Weekday})
}

func (t toolset) updateEvent(ctx context.Context, input eventUpdateInput) (map[string]any, error) {
	id, err := parseUUID(input.EventID)
	if err != nil {
		return nil, err
	}
	if err := t.app.UpdateRecurringEventHandler.Handle(ctx, commands.UpdateRecurringEventCommand{
		EventID:             id,
		RecurringEventInput: input.toCommand(),
	}); err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"id": id}, nil
}

func (t toolset) deleteEvent(ctx context.Context, input eventIDInput) (map[string]any, error) {
	id, err := parseUUID(input.EventID)
	if err != nil {
		return nil, err
	}
	if err := t.app.DeleteRecurringEventHandler.Handle(ctx, commands.DeleteRecurringEventCommand{EventID: id}); err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"id": id, "deleted": true}, nil
}

func (t toolset) importCalendar(ctx context.Context, input calendarImportInput) (*commands.ImportCalendarResult, error) {
	result, err := t.app.ImportCalendarHandler.Handle(ctx, commands.ImportCalendarCommand{
		Text:   input.Text,
		URL:    input.URL,
		DryRun: input.DryRun,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)
	return result, nil
}
