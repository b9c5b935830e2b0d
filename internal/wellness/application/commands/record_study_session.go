package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// RecordStudySessionCommand logs a finished block of study.
type RecordStudySessionCommand struct {
	TaskID             *uuid.UUID
	Start              time.Time
	End                time.Time
	EnergyLevel        string
	ProductivityRating int
}

// RecordStudySessionResult identifies the stored session.
type RecordStudySessionResult struct {
	SessionID       uuid.UUID
	DurationMinutes int
}

// RecordStudySessionHandler stores a session and feeds its energy level
// back into the energy log at the session's starting weekday and hour.
type RecordStudySessionHandler struct {
	sessionRepo     domain.StudySessionRepository
	observationRepo domain.ObservationRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	loc             *time.Location
}

// NewRecordStudySessionHandler creates a new RecordStudySessionHandler.
// Session start times are bucketed on the wall clock of loc.
func NewRecordStudySessionHandler(
	sessionRepo domain.StudySessionRepository,
	observationRepo domain.ObservationRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	loc *time.Location,
) *RecordStudySessionHandler {
	if loc == nil {
		loc = time.Local
	}
	return &RecordStudySessionHandler{
		sessionRepo:     sessionRepo,
		observationRepo: observationRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
		loc:             loc,
	}
}

// Handle executes the RecordStudySessionCommand.
func (h *RecordStudySessionHandler) Handle(ctx context.Context, cmd RecordStudySessionCommand) (*RecordStudySessionResult, error) {
	level, err := domain.ParseEnergyLevel(cmd.EnergyLevel)
	if err != nil {
		return nil, err
	}
	session, err := domain.NewStudySession(cmd.TaskID, cmd.Start.In(h.loc), cmd.End.In(h.loc), level, cmd.ProductivityRating)
	if err != nil {
		return nil, err
	}
	observation := session.Observation()

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.sessionRepo.Save(txCtx, session); err != nil {
			return err
		}
		if err := h.observationRepo.Append(txCtx, observation); err != nil {
			return err
		}

		events := session.DomainEvents()
		events = append(events[:len(events):len(events)], domain.NewEnergyRecorded(observation))
		return saveEvents(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &RecordStudySessionResult{
		SessionID:       session.ID(),
		DurationMinutes: session.DurationMinutes(),
	}, nil
}
