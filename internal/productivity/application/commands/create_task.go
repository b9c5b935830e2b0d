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

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Title          string
	Description    string
	Category       string
	Priority       string
	DueDate        *time.Time
	EstimatedHours *float64
	EnergyLevel    string
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID   uuid.UUID
	Subtasks int
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand. Tasks estimated above the breakdown
// threshold get their project phases as subtasks.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	priority, err := value_objects.ParsePriority(cmd.Priority)
	if err != nil {
		return nil, err
	}
	category := task.CategoryAssignment
	if cmd.Category != "" {
		if category, err = task.ParseCategory(cmd.Category); err != nil {
			return nil, err
		}
	}
	hours, err := value_objects.NewOptionalHours(cmd.EstimatedHours)
	if err != nil {
		return nil, err
	}
	energy, err := wellness.ParseOptionalEnergyLevel(cmd.EnergyLevel)
	if err != nil {
		return nil, err
	}

	var result *CreateTaskResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := task.NewTask(cmd.Title, category, priority, hours)
		if err != nil {
			return err
		}
		if cmd.Description != "" {
			t.SetDescription(cmd.Description)
		}
		if cmd.DueDate != nil {
			t.SetDueDate(cmd.DueDate)
		}
		if energy != nil {
			t.SetEnergyPreference(energy)
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, t.DomainEvents()); err != nil {
			return err
		}

		result = &CreateTaskResult{TaskID: t.ID(), Subtasks: len(t.Subtasks())}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
