package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/calendar/domain"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RecurringEventInput is the editable shape of a recurring event as
// transports receive it. Times are "HH:MM" and dates "YYYY-MM-DD".
type RecurringEventInput struct {
	Name        string
	Description string
	Category    string
	StartTime   string
	EndTime     string
	Pattern     string
	Weekdays    []int
	ValidFrom   string
	ValidUntil  string
}

func (in RecurringEventInput) details() (domain.Details, error) {
	var (
		d   domain.Details
		err error
	)
	d.Name = in.Name
	d.Description = in.Description
	if d.Category, err = domain.ParseCategory(in.Category); err != nil {
		return d, err
	}
	if d.Start, err = schedulingDomain.ParseClock(in.StartTime); err != nil {
		return d, err
	}
	if d.End, err = schedulingDomain.ParseClock(in.EndTime); err != nil {
		return d, err
	}
	d.Pattern = domain.PatternWeekly
	if in.Pattern != "" {
		if d.Pattern, err = domain.ParsePattern(in.Pattern); err != nil {
			return d, err
		}
	}
	if d.Weekdays, err = domain.NewWeekdays(in.Weekdays); err != nil {
		return d, err
	}
	if d.ValidFrom, err = optionalDate(in.ValidFrom); err != nil {
		return d, err
	}
	if d.ValidUntil, err = optionalDate(in.ValidUntil); err != nil {
		return d, err
	}
	return d, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := schedulingDomain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateRecurringEventCommand adds a commitment.
type CreateRecurringEventCommand struct {
	RecurringEventInput
}

// CreateRecurringEventResult identifies the new event.
type CreateRecurringEventResult struct {
	EventID uuid.UUID
}

// CreateRecurringEventHandler handles CreateRecurringEventCommand.
type CreateRecurringEventHandler struct {
	eventRepo  domain.RecurringEventRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateRecurringEventHandler creates a new CreateRecurringEventHandler.
func NewCreateRecurringEventHandler(eventRepo domain.RecurringEventRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateRecurringEventHandler {
	return &CreateRecurringEventHandler{eventRepo: eventRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the CreateRecurringEventCommand.
func (h *CreateRecurringEventHandler) Handle(ctx context.Context, cmd CreateRecurringEventCommand) (*CreateRecurringEventResult, error) {
	d, err := cmd.details()
	if err != nil {
		return nil, err
	}
	e, err := domain.NewRecurringEvent(d)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.eventRepo.Save(txCtx, e); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, e.DomainEvents())
	})
	if err != nil {
		return nil, err
	}
	return &CreateRecurringEventResult{EventID: e.ID()}, nil
}

// UpdateRecurringEventCommand replaces every field of an event.
type UpdateRecurringEventCommand struct {
	EventID uuid.UUID
	RecurringEventInput
}

// UpdateRecurringEventHandler handles UpdateRecurringEventCommand.
type UpdateRecurringEventHandler struct {
	eventRepo  domain.RecurringEventRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateRecurringEventHandler creates a new UpdateRecurringEventHandler.
func NewUpdateRecurringEventHandler(eventRepo domain.RecurringEventRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateRecurringEventHandler {
	return &UpdateRecurringEventHandler{eventRepo: eventRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the UpdateRecurringEventCommand.
func (h *UpdateRecurringEventHandler) Handle(ctx context.Context, cmd UpdateRecurringEventCommand) error {
	d, err := cmd.details()
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		e, err := h.eventRepo.FindByID(txCtx, cmd.EventID)
		if err != nil {
			return err
		}
		if err := e.Update(d); err != nil {
			return err
		}
		if err := h.eventRepo.Save(txCtx, e); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, e.DomainEvents())
	})
}

// DeleteRecurringEventCommand removes an event.
type DeleteRecurringEventCommand struct {
	EventID uuid.UUID
}

// DeleteRecurringEventHandler handles DeleteRecurringEventCommand.
type DeleteRecurringEventHandler struct {
	eventRepo  domain.RecurringEventRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewDeleteRecurringEventHandler creates a new DeleteRecurringEventHandler.
func NewDeleteRecurringEventHandler(eventRepo domain.RecurringEventRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *DeleteRecurringEventHandler {
	return &DeleteRecurringEventHandler{eventRepo: eventRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the DeleteRecurringEventCommand.
func (h *DeleteRecurringEventHandler) Handle(ctx context.Context, cmd DeleteRecurringEventCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		e, err := h.eventRepo.FindByID(txCtx, cmd.EventID)
		if err != nil {
			return err
		}
		e.MarkDeleted()
		if err := h.eventRepo.Delete(txCtx, e.ID()); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, e.DomainEvents())
	})
}
