package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
)

// ListTasksQuery filters the task list. Empty fields match everything.
type ListTasksQuery struct {
	Status   string
	Category string
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: time.Now}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var (
		filter task.ListFilter
		err    error
	)
	if query.Status != "" {
		if filter.Status, err = task.ParseStatus(query.Status); err != nil {
			return nil, err
		}
	}
	if query.Category != "" {
		if filter.Category, err = task.ParseCategory(query.Category); err != nil {
			return nil, err
		}
	}

	tasks, err := h.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := h.now()
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t, today))
	}
	return dtos, nil
}
