package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/ics"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
)

// Fetcher downloads a published calendar export.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ImportCalendarCommand imports recurring events from exported calendar
// text. Exactly one of Text and URL is set.
type ImportCalendarCommand struct {
	Text string
	URL  string
	// DryRun parses without saving.
	DryRun bool
}

// SkippedCandidate is a parsed event that could not become a recurring event.
type SkippedCandidate struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ImportCalendarResult reports how much of the input survived.
type ImportCalendarResult struct {
	Blocks   int                `json:"blocks"`
	Parsed   int                `json:"parsed"`
	Imported []uuid.UUID        `json:"imported"`
	Skipped  []SkippedCandidate `json:"skipped,omitempty"`
}

// ImportCalendarHandler handles ImportCalendarCommand.
type ImportCalendarHandler struct {
	eventRepo  domain.RecurringEventRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	fetcher    Fetcher
	logger     *slog.Logger
}

// NewImportCalendarHandler creates a new ImportCalendarHandler. fetcher may
// be nil, in which case URL imports are rejected.
func NewImportCalendarHandler(
	eventRepo domain.RecurringEventRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	fetcher Fetcher,
	logger *slog.Logger,
) *ImportCalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportCalendarHandler{
		eventRepo:  eventRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// Handle parses the export and saves every usable candidate in one unit of
// work. Parsing never fails; candidates without a start time or with a
// non-positive hour span are reported as skipped.
func (h *ImportCalendarHandler) Handle(ctx context.Context, cmd ImportCalendarCommand) (*ImportCalendarResult, error) {
	source := "text"
	text := cmd.Text
	switch {
	case cmd.Text != "" && cmd.URL != "":
		return nil, sharedDomain.InvalidInputf("give calendar text or a url, not both")
	case cmd.URL != "":
		if h.fetcher == nil {
			return nil, sharedDomain.InvalidInputf("url imports are not enabled")
		}
		var err error
		if text, err = h.fetcher.Fetch(ctx, cmd.URL); err != nil {
			return nil, err
		}
		source = cmd.URL
	case cmd.Text == "":
		return nil, sharedDomain.InvalidInputf("calendar text is empty")
	}

	parsed := ics.Parse(text)
	result := &ImportCalendarResult{Blocks: parsed.Blocks, Parsed: len(parsed.Events), Imported: []uuid.UUID{}}

	var events []*domain.RecurringEvent
	for _, c := range parsed.Events {
		e, reason := fromCandidate(c)
		if e == nil {
			result.Skipped = append(result.Skipped, SkippedCandidate{Name: c.Name, Reason: reason})
			continue
		}
		events = append(events, e)
		result.Imported = append(result.Imported, e.ID())
	}

	logger := observability.LogOperation(h.logger, "calendar.import",
		"source", source,
		"blocks", result.Blocks,
		"parsed", result.Parsed,
		"usable", len(events),
	)
	if cmd.DryRun {
		logger.Info("calendar import dry run")
		return result, nil
	}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var pending []sharedDomain.DomainEvent
		for _, e := range events {
			if err := h.eventRepo.Save(txCtx, e); err != nil {
				return err
			}
			pending = append(pending, e.DomainEvents()...)
		}
		pending = append(pending, domain.NewCalendarImported(uuid.New(), source, result.Blocks, len(events), len(result.Skipped)))
		return saveEvents(txCtx, h.outboxRepo, pending)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("calendar imported", "skipped", len(result.Skipped))
	return result, nil
}

// fromCandidate turns a parsed block into an event. Blocks with no end time
// last one hour.
func fromCandidate(c ics.Candidate) (*domain.RecurringEvent, string) {
	if c.Start == nil {
		return nil, "no start time"
	}
	end := c.End
	if end == nil {
		if c.Start.Hour == schedulingDomain.HoursPerDay-1 {
			return nil, "no end time"
		}
		next := schedulingDomain.Clock{Hour: c.Start.Hour + 1, Minute: c.Start.Minute}
		end = &next
	}
	if c.DurationHours != nil && *c.DurationHours <= 0 {
		return nil, "does not span a whole hour on one day"
	}

	weekdays, err := domain.NewWeekdays(c.Weekdays)
	if err != nil {
		return nil, err.Error()
	}
	e, err := domain.NewRecurringEvent(domain.Details{
		Name:        c.Name,
		Description: c.Description,
		Category:    domain.CategoryOther,
		Start:       *c.Start,
		End:         *end,
		Pattern:     c.Pattern,
		Weekdays:    weekdays,
		ValidFrom:   c.StartDate,
	})
	if err != nil {
		return nil, err.Error()
	}
	return e, ""
}
