package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// UpdateSubtaskStatusCommand moves one subtask to a new status.
type UpdateSubtaskStatusCommand struct {
	SubtaskID uuid.UUID
	Status    string
}

// UpdateSubtaskStatusHandler handles the UpdateSubtaskStatusCommand.
type UpdateSubtaskStatusHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateSubtaskStatusHandler creates a new UpdateSubtaskStatusHandler.
func NewUpdateSubtaskStatusHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateSubtaskStatusHandler {
	return &UpdateSubtaskStatusHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateSubtaskStatusCommand.
func (h *UpdateSubtaskStatusHandler) Handle(ctx context.Context, cmd UpdateSubtaskStatusCommand) error {
	status, err := task.ParseStatus(cmd.Status)
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindBySubtaskID(txCtx, cmd.SubtaskID)
		if err != nil {
			return err
		}
		if err := t.SetSubtaskStatus(cmd.SubtaskID, status); err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, t.DomainEvents())
	})
}
