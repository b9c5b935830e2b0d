package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
)

func saveEvents(txCtx context.Context, outboxRepo outbox.Repository, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.EventMetadataFromContext(txCtx))
	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	return outboxRepo.SaveBatch(txCtx, msgs)
}
