package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// RecordEnergyCommand logs how energetic the user felt at a weekday/hour.
type RecordEnergyCommand struct {
	Weekday int
	Hour    int
	Level   string
}

// RecordEnergyResult identifies the stored observation.
type RecordEnergyResult struct {
	ObservationID uuid.UUID
}

// RecordEnergyHandler appends observations to the energy log.
type RecordEnergyHandler struct {
	observationRepo domain.ObservationRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
}

// NewRecordEnergyHandler creates a new RecordEnergyHandler.
func NewRecordEnergyHandler(observationRepo domain.ObservationRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RecordEnergyHandler {
	return &RecordEnergyHandler{
		observationRepo: observationRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
	}
}

// Handle executes the RecordEnergyCommand.
func (h *RecordEnergyHandler) Handle(ctx context.Context, cmd RecordEnergyCommand) (*RecordEnergyResult, error) {
	level, err := domain.ParseEnergyLevel(cmd.Level)
	if err != nil {
		return nil, err
	}
	o, err := domain.NewObservation(cmd.Weekday, cmd.Hour, level, time.Now())
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.observationRepo.Append(txCtx, o); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, domain.NewEnergyRecorded(o))
	})
	if err != nil {
		return nil, err
	}

	return &RecordEnergyResult{ObservationID: o.ID}, nil
}
