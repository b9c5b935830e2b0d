package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
)

// PinAssignmentCommand places a task at a fixed time on a date.
type PinAssignmentCommand struct {
	TaskID      uuid.UUID
	Date        time.Time
	StartTime   string
	EndTime     string
	EnergyLevel string
}

// PinAssignmentResult describes the stored assignment.
type PinAssignmentResult struct {
	Assignment schedulingDomain.Assignment
	// Replaced counts the earlier assignments of the same task and date
	// that were evicted.
	Replaced int
}

// PinAssignmentHandler handles PinAssignmentCommand.
type PinAssignmentHandler struct {
	taskRepo       task.Repository
	assignmentRepo schedulingDomain.AssignmentRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewPinAssignmentHandler creates a new PinAssignmentHandler.
func NewPinAssignmentHandler(
	taskRepo task.Repository,
	assignmentRepo schedulingDomain.AssignmentRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *PinAssignmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PinAssignmentHandler{
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		logger:         logger,
	}
}

// Handle stores the assignment, evicting any earlier one for the same task
// and date in the same unit of work so only the latest pin survives.
func (h *PinAssignmentHandler) Handle(ctx context.Context, cmd PinAssignmentCommand) (*PinAssignmentResult, error) {
	start, err := schedulingDomain.ParseClock(cmd.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedulingDomain.ParseClock(cmd.EndTime)
	if err != nil {
		return nil, err
	}
	var energy wellness.EnergyLevel
	if cmd.EnergyLevel != "" {
		if energy, err = wellness.ParseEnergyLevel(cmd.EnergyLevel); err != nil {
			return nil, err
		}
	}
	a, err := schedulingDomain.NewManualAssignment(cmd.TaskID, cmd.Date, start, end, energy)
	if err != nil {
		return nil, err
	}

	var replaced int
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		a.Title = t.Title()

		if replaced, err = h.assignmentRepo.DeleteForTaskDate(txCtx, a.TaskID, a.Date); err != nil {
			return err
		}
		if err := h.assignmentRepo.Insert(txCtx, a); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, schedulingDomain.NewAssignmentPinned(a, replaced))
	})
	if err != nil {
		return nil, err
	}

	observability.LogOperation(h.logger, "schedule.pin",
		"task_id", a.TaskID,
		"date", a.Date.Format(schedulingDomain.DateLayout),
		"replaced", replaced,
	).Info("assignment pinned")
	return &PinAssignmentResult{Assignment: a, Replaced: replaced}, nil
}

// UnpinAssignmentCommand removes a manual assignment.
type UnpinAssignmentCommand struct {
	AssignmentID uuid.UUID
}

// UnpinAssignmentHandler handles UnpinAssignmentCommand.
type UnpinAssignmentHandler struct {
	assignmentRepo schedulingDomain.AssignmentRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
}

// NewUnpinAssignmentHandler creates a new UnpinAssignmentHandler.
func NewUnpinAssignmentHandler(assignmentRepo schedulingDomain.AssignmentRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UnpinAssignmentHandler {
	return &UnpinAssignmentHandler{assignmentRepo: assignmentRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the UnpinAssignmentCommand.
func (h *UnpinAssignmentHandler) Handle(ctx context.Context, cmd UnpinAssignmentCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.assignmentRepo.Delete(txCtx, cmd.AssignmentID); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, schedulingDomain.NewAssignmentUnpinned(cmd.AssignmentID))
	})
}
