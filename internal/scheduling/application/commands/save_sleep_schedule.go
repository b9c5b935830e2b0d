package commands

import (
	"context"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
)

// SaveSleepScheduleCommand overwrites the sleep preference.
type SaveSleepScheduleCommand struct {
	Bedtime      string
	WakeTime     string
	DesiredHours float64
	Optimize     bool
	Flexible     bool
}

// SaveSleepScheduleHandler handles SaveSleepScheduleCommand.
type SaveSleepScheduleHandler struct {
	sleepRepo  schedulingDomain.SleepRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewSaveSleepScheduleHandler creates a new SaveSleepScheduleHandler.
func NewSaveSleepScheduleHandler(sleepRepo schedulingDomain.SleepRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *SaveSleepScheduleHandler {
	return &SaveSleepScheduleHandler{sleepRepo: sleepRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the SaveSleepScheduleCommand.
func (h *SaveSleepScheduleHandler) Handle(ctx context.Context, cmd SaveSleepScheduleCommand) (*schedulingDomain.SleepSchedule, error) {
	s, err := schedulingDomain.NewSleepSchedule(cmd.Bedtime, cmd.WakeTime, cmd.DesiredHours, cmd.Optimize, cmd.Flexible)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.sleepRepo.Save(txCtx, s); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, schedulingDomain.NewSleepSaved(s))
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
