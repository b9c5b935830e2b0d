package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// UpdateTaskCommand carries a partial update. Nil fields are left alone.
type UpdateTaskCommand struct {
	TaskID         uuid.UUID
	Title          *string
	Description    *string
	Category       *string
	Priority       *string
	Status         *string
	DueDate        *time.Time
	ClearDueDate   bool
	EstimatedHours *float64
	ClearEstimate  bool
	// EnergyLevel set to "" clears the preference.
	EnergyLevel    *string
	CompletedHours *float64
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	update, err := cmd.toUpdate()
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if err := t.Apply(update); err != nil {
			return err
		}
		if len(t.DomainEvents()) == 0 {
			return nil
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, t.DomainEvents())
	})
}

func (cmd UpdateTaskCommand) toUpdate() (task.Update, error) {
	var u task.Update

	u.Title = cmd.Title
	u.Description = cmd.Description
	u.CompletedHours = cmd.CompletedHours

	if cmd.Category != nil {
		c, err := task.ParseCategory(*cmd.Category)
		if err != nil {
			return u, err
		}
		u.Category = &c
	}
	if cmd.Priority != nil {
		p, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return u, err
		}
		u.Priority = &p
	}
	if cmd.Status != nil {
		s, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return u, err
		}
		u.Status = &s
	}
	switch {
	case cmd.ClearDueDate:
		var none *time.Time
		u.DueDate = &none
	case cmd.DueDate != nil:
		due := cmd.DueDate
		u.DueDate = &due
	}
	switch {
	case cmd.ClearEstimate:
		var none *value_objects.Hours
		u.EstimatedHours = &none
	case cmd.EstimatedHours != nil:
		hours, err := value_objects.NewOptionalHours(cmd.EstimatedHours)
		if err != nil {
			return u, err
		}
		u.EstimatedHours = &hours
	}
	if cmd.EnergyLevel != nil {
		level, err := wellness.ParseOptionalEnergyLevel(*cmd.EnergyLevel)
		if err != nil {
			return u, err
		}
		u.Energy = &level
	}
	return u, nil
}
