package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SleepRepository stores the singleton sleep preference.
type SleepRepository interface {
	// Get returns nil when no preference has been saved.
	Get(ctx context.Context) (*SleepSchedule, error)
	Save(ctx context.Context, s SleepSchedule) error
}

// AssignmentRepository stores manual assignments.
type AssignmentRepository interface {
	// DeleteForTaskDate removes every assignment of the task on the date and
	// reports how many were removed.
	DeleteForTaskDate(ctx context.Context, taskID uuid.UUID, date time.Time) (int, error)
	Insert(ctx context.Context, a Assignment) error
	FindByDate(ctx context.Context, date time.Time) ([]Assignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
