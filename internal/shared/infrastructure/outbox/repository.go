package outbox

import (
	"context"
	"time"
)

// Repository defines the interface for outbox persistence.
type Repository interface {
	// SaveBatch stores messages using the transaction on ctx when there is one.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns pending messages that are due, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished marks a message as successfully published.
	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed records a publish failure and when to try again.
	MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error

	// MarkDead stops retrying a message.
	MarkDead(ctx context.Context, id int64, reason string) error

	// DeleteOld removes published messages older than the cutoff.
	DeleteOld(ctx context.Context, before time.Time) (int64, error)
}
