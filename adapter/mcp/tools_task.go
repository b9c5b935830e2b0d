package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
)

type taskCreateInput struct {
	Title          string   `json:"title" jsonschema:"required"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	EnergyLevel    string   `json:"energy_level,omitempty"`
}

type taskUpdateInput struct {
	TaskID         string   `json:"task_id" jsonschema:"required"`
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Priority       *string  `json:"priority,omitempty"`
	Status         *string  `json:"status,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	CompletedHours *float64 `json:"completed_hours,omitempty"`
	EnergyLevel    *string  `json:"energy_level,omitempty"`
}

type taskListInput struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type subtaskStatusInput struct {
	SubtaskID string `json:"subtask_id" jsonschema:"required"`
	Status    string `json:"status" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, t toolset) {
	srv.Tool("task.create").
		Description("Create a task. Assignments and exams with an estimate are broken into subtasks").
		Handler(t.createTask)

	srv.Tool("task.list").
		Description("List tasks, optionally filtered by status or category").
		Handler(t.listTasks)

	srv.Tool("task.get").
		Description("Get a task with its subtasks").
		Handler(t.getTask)

	srv.Tool("task.update").
		Description("Update the given fields of a task. An empty due_date clears it").
		Handler(t.updateTask)

	srv.Tool("task.delete").
		Description("Delete a task and its subtasks").
		Handler(t.deleteTask)

	srv.Tool("subtask.set_status").
		Description("Set the status of a subtask").
		Handler(t.setSubtaskStatus)

	srv.Tool("stats.get").
		Description("Task counts, completion rate and study hours").
		Handler(t.stats)
}

func (t toolset) createTask(ctx context.Context, input taskCreateInput) (*queries.TaskDTO, error) {
	due, err := parseOptionalDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	result, err := t.app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Priority:       input.Priority,
		DueDate:        due,
		EstimatedHours: input.EstimatedHours,
		EnergyLevel:    input.EnergyLevel,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)

	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: result.TaskID})
}

func (t toolset) listTasks(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
	return t.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
		Status:   input.Status,
		Category: input.Category,
	})
}

func (t toolset) getTask(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: id})
}

func (t toolset) updateTask(ctx context.Context, input taskUpdateInput) (*queries.TaskDTO, error) {
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}

	cmd := commands.UpdateTaskCommand{
		TaskID:         id,
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Priority:       input.Priority,
		Status:         input.Status,
		EstimatedHours: input.EstimatedHours,
		CompletedHours: input.CompletedHours,
		EnergyLevel:    input.EnergyLevel,
	}
	if input.DueDate != nil {
		due, err := parseOptionalDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		cmd.DueDate = due
		cmd.ClearDueDate = due == nil
	}

	if err := t.app.UpdateTaskHandler.Handle(ctx, cmd); err != nil {
		return nil, err
	}
	t.flush(ctx)

	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: id})
}

func (t toolset) deleteTask(ctx context.Context, input taskIDInput) (map[string]any, error) {
	id, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	if err := t.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: id}); err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"task_id": id, "deleted": true}, nil
}

func (t toolset) setSubtaskStatus(ctx context.Context, input subtaskStatusInput) (map[string]any, error) {
	id, err := parseUUID(input.SubtaskID)
	if err != nil {
		return nil, err
	}
	if err := t.app.UpdateSubtaskStatusHandler.Handle(ctx, commands.UpdateSubtaskStatusCommand{
		SubtaskID: id,
		Status:    input.Status,
	}); err != nil {
		return nil, err
	}
	t.flush(ctx)
	return map[string]any{"subtask_id": id, "status": input.Status}, nil
}

func (t toolset) stats(ctx context.Context, _ struct{}) (*queries.StatsDTO, error) {
	return t.app.GetStatsHandler.Handle(ctx)
}
