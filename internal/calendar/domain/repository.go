package domain

import (
	"context"

	"github.com/google/uuid"
)

// RecurringEventRepository persists recurring events.
type RecurringEventRepository interface {
	Save(ctx context.Context, e *RecurringEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringEvent, error)
	// List returns events ordered by start time.
	List(ctx context.Context) ([]*RecurringEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
