package queries

import (
	"context"
	"log/slog"
	"time"

	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
)

// GenerateScheduleQuery asks for the plan of one date.
type GenerateScheduleQuery struct {
	Date time.Time
}

// Plan pairs the engine output with the date's pinned assignments.
type Plan struct {
	Result *services.ScheduleResult
	Pinned []schedulingDomain.Assignment
}

// GenerateScheduleHandler loads a consistent snapshot and runs the engine.
type GenerateScheduleHandler struct {
	taskRepo        task.Repository
	eventRepo       calendarDomain.RecurringEventRepository
	observationRepo wellness.ObservationRepository
	sleepRepo       schedulingDomain.SleepRepository
	assignmentRepo  schedulingDomain.AssignmentRepository
	uow             sharedApplication.UnitOfWork
	engine          *services.SchedulerEngine
	loc             *time.Location
	now             func() time.Time
	logger          *slog.Logger
}

// NewGenerateScheduleHandler creates a new GenerateScheduleHandler. The
// location decides which hours of today have already passed.
func NewGenerateScheduleHandler(
	taskRepo task.Repository,
	eventRepo calendarDomain.RecurringEventRepository,
	observationRepo wellness.ObservationRepository,
	sleepRepo schedulingDomain.SleepRepository,
	assignmentRepo schedulingDomain.AssignmentRepository,
	uow sharedApplication.UnitOfWork,
	engine *services.SchedulerEngine,
	loc *time.Location,
	logger *slog.Logger,
) *GenerateScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	if engine == nil {
		engine = services.NewSchedulerEngine(services.DefaultSchedulerConfig())
	}
	return &GenerateScheduleHandler{
		taskRepo:        taskRepo,
		eventRepo:       eventRepo,
		observationRepo: observationRepo,
		sleepRepo:       sleepRepo,
		assignmentRepo:  assignmentRepo,
		uow:             uow,
		engine:          engine,
		loc:             loc,
		now:             time.Now,
		logger:          logger,
	}
}

// Generate builds the plan for date. All reads happen in one unit of work.
// Tasks pinned on the date are left to their pins and not placed again, and
// the pinned hours are not offered to other tasks.
func (h *GenerateScheduleHandler) Generate(ctx context.Context, date time.Time) (*Plan, error) {
	if date.IsZero() {
		return nil, sharedDomain.InvalidInputf("target date is required")
	}
	date = schedulingDomain.DateOf(date)

	var (
		snap   services.Snapshot
		pinned []schedulingDomain.Assignment
	)
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		if snap.Sleep, err = h.sleepRepo.Get(txCtx); err != nil {
			return err
		}
		if snap.Events, err = h.eventRepo.List(txCtx); err != nil {
			return err
		}
		observations, err := h.observationRepo.List(txCtx)
		if err != nil {
			return err
		}
		snap.Energy = wellness.NewHistogram(observations)
		if pinned, err = h.assignmentRepo.FindByDate(txCtx, date); err != nil {
			return err
		}
		open, err := h.taskRepo.FindOpen(txCtx)
		if err != nil {
			return err
		}
		snap.Pinned = pinned
		snap.Tasks = schedulable(open, pinned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := h.engine.Generate(date, snap, h.now().In(h.loc))
	if err != nil {
		return nil, err
	}

	observability.LogOperation(h.logger, "schedule.generate",
		"date", date.Format(schedulingDomain.DateLayout),
		"free_slots", len(result.FreeSlots),
		"candidates", len(snap.Tasks),
		"assigned", result.TotalAssignedTasks,
		"pinned", len(pinned),
	).Debug("schedule generated")
	return &Plan{Result: result, Pinned: pinned}, nil
}

// Handle executes the GenerateScheduleQuery.
func (h *GenerateScheduleHandler) Handle(ctx context.Context, query GenerateScheduleQuery) (*ScheduleDTO, error) {
	plan, err := h.Generate(ctx, query.Date)
	if err != nil {
		return nil, err
	}
	dto := toScheduleDTO(plan)
	return &dto, nil
}

func schedulable(open []*task.Task, pinned []schedulingDomain.Assignment) []services.SchedulableTask {
	skip := make(map[uuid.UUID]bool, len(pinned))
	for _, a := range pinned {
		skip[a.TaskID] = true
	}
	out := make([]services.SchedulableTask, 0, len(open))
	for _, t := range open {
		if skip[t.ID()] {
			continue
		}
		out = append(out, services.SchedulableTaskFrom(t))
	}
	return out
}
