package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/ics"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// ExportScheduleQuery asks for a date's plan as an iCalendar document.
type ExportScheduleQuery struct {
	Date time.Time
}

// ExportScheduleHandler renders generated and pinned assignments as events.
type ExportScheduleHandler struct {
	generator *GenerateScheduleHandler
	loc       *time.Location
	now       func() time.Time
}

// NewExportScheduleHandler creates a new ExportScheduleHandler.
func NewExportScheduleHandler(generator *GenerateScheduleHandler, loc *time.Location) *ExportScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ExportScheduleHandler{generator: generator, loc: loc, now: time.Now}
}

// Handle executes the ExportScheduleQuery.
func (h *ExportScheduleHandler) Handle(ctx context.Context, query ExportScheduleQuery) ([]byte, error) {
	plan, err := h.generator.Generate(ctx, query.Date)
	if err != nil {
		return nil, err
	}

	all := make([]schedulingDomain.Assignment, 0, len(plan.Result.Assignments)+len(plan.Pinned))
	all = append(all, plan.Result.Assignments...)
	all = append(all, plan.Pinned...)

	entries := make([]ics.Entry, 0, len(all))
	for _, a := range all {
		entries = append(entries, ics.Entry{
			UID:         fmt.Sprintf("%s-%s@tempo", a.TaskID, a.Date.Format("20060102")),
			Title:       a.Title,
			Description: string(a.Reason),
			Start:       h.at(a.Date, a.Start),
			End:         h.at(a.Date, a.End),
		})
	}
	return ics.Export(entries, h.now())
}

func (h *ExportScheduleHandler) at(date time.Time, c schedulingDomain.Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, h.loc)
}
