package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
)

type dateInput struct {
	Date string `json:"date,omitempty"`
}

type pinInput struct {
	TaskID      string `json:"task_id" jsonschema:"required"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time" jsonschema:"required"`
	EndTime     string `json:"end_time" jsonschema:"required"`
	EnergyLevel string `json:"energy_level,omitempty"`
}

type unpinInput struct {
	AssignmentID string `json:"assignment_id" jsonschema:"required"`
}

type sleepInput struct {
	Bedtime      string  `json:"bedtime" jsonschema:"required"`
	WakeTime     string  `json:"wake_time" jsonschema:"required"`
	DesiredHours float64 `json:"desired_hours,omitempty"`
	Optimize     bool    `json:"optimize,omitempty"`
	Flexible     bool    `json:"flexible,omitempty"`
}

type exportResult struct {
	Date     string `json:"date"`
	MimeType string `json:"mime_type"`
	Calendar string `json:"calendar"`
}

func registerScheduleTools(srv *mcp.Server, t toolset) {
	srv.Tool("schedule.generate").
		Description("Plan a date (YYYY-MM-DD, default today) around sleep, recurring events and energy").
		Handler(t.generateSchedule)

	srv.Tool("schedule.pin").
		Description("Pin a task to a fixed time on a date, replacing any earlier pin of that task on that date").
		Handler(t.pin)

	srv.Tool("schedule.unpin").
		Description("Remove a pinned task").
		Handler(t.unpin)

	srv.Tool("schedule.pinned").
		Description("List the pinned tasks of a date").
		Handler(t.listPinned)

	srv.Tool("schedule.export").
		Description("Export the plan of a date as an iCalendar document").
		Handler(t.exportSchedule)

	srv.Tool("sleep.set").
		Description("Save the sleep schedule").
		Handler(t.setSleep)

	srv.Tool("sleep.get").
		Description("Get the saved sleep schedule").
		Handler(t.getSleep)
}

func (t toolset) generateSchedule(ctx context.Context, input dateInput) (*queries.ScheduleDTO, error) {
	date, err := parseDate(input.Date, t.app.Today())
	if err != nil {
		return nil, err
	}
	return t.app.GenerateScheduleHandler.Handle(ctx, queries.GenerateScheduleQuery{Date: date})
}

func (t toolset) pin(ctx context.Context, input pinInput) (map[string]any, error) {
	taskID, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.Date, t.app.Today())
	if err != nil {
		return nil, err
	}

	result, err := t.app.PinAssignmentHandler.Handle(ctx, commands.PinAssignmentCommand{
		TaskID:      taskID,
		Date:        date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		EnergyLevel: input.EnergyLevel,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)

	return map[string]any{
		"assignment": queries.ToAssignmentDTO(result.Assignment),
		"replaced":   result.Replaced,
	}, nil
}

func (t toolset) unpin(ctx context.Context, input unpinInput) (map[string]any, error) {
	id, err := parseUUID(input.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := t.app.UnpinAssignmentHandler.Handle(ctx, commands.UnpinAssignmentCommand{AssignmentID: id}); err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"id": id, "deleted": true}, nil
}

func (t toolset) listPinned(ctx context.Context, input dateInput) ([]queries.AssignmentDTO, error) {
	date, err := parseDate(input.Date, t.app.Today())
	if err != nil {
		return nil, err
	}
	return t.app.ListPinnedHandler.Handle(ctx, queries.ListPinnedQuery{Date: date})
}

func (t toolset) exportSchedule(ctx context.Context, input dateInput) (*exportResult, error) {
	date, err := parseDate(input.Date, t.app.Today())
	if err != nil {
		return nil, err
	}
	data, err := t.app.ExportScheduleHandler.Handle(ctx, queries.ExportScheduleQuery{Date: date})
	if err != nil {
		return nil, err
	}
	return &exportResult{
		Date:     date.Format("2006-01-02"),
		MimeType: "text/calendar",
		Calendar: string(data),
	}, nil
}

func (t toolset) setSleep(ctx context.Context, input sleepInput) (*queries.SleepDTO, error) {
	sleep, err := t.app.SaveSleepScheduleHandler.Handle(ctx, commands.SaveSleepScheduleCommand{
		Bedtime:      input.Bedtime,
		WakeTime:     input.WakeTime,
		DesiredHours: input.DesiredHours,
		Optimize:     input.Optimize,
		Flexible:     input.Flexible,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)
	return queries.ToSleepDTO(sleep), nil
}

func (t toolset) getSleep(ctx context.Context, _ struct{}) (*queries.SleepDTO, error) {
	return t.app.GetSleepScheduleHandler.Handle(ctx)
}
