package task

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows ListTasks. Empty fields match everything.
type ListFilter struct {
	Status   Status
	Category Category
}

// Repository persists tasks together with their subtasks.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindBySubtaskID(ctx context.Context, subtaskID uuid.UUID) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]*Task, error)
	// FindOpen returns every task that is not completed, in creation order.
	FindOpen(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
