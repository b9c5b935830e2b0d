package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/persistence"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	events *persistence.RecurringEventRepository
	outbox *outbox.Store
	uow    *database.UnitOfWork
}

func newEnv(t *testing.T) env {
	conn := databasetest.OpenSQLite(t)
	return env{
		events: persistence.NewRecurringEventRepository(conn),
		outbox: outbox.NewStore(conn),
		uow:    database.NewUnitOfWork(conn),
	}
}

func (e env) routingKeys(t *testing.T) []string {
	t.Helper()
	msgs, err := e.outbox.GetUnpublished(context.Background(), 100)
	require.NoError(t, err)
	keys := make([]string, 0, len(msgs))
	for _, m := range msgs {
		keys = append(keys, m.RoutingKey)
	}
	return keys
}

func lecture() RecurringEventInput {
	return RecurringEventInput{
		Name:      "Linear Algebra",
		Category:  "class",
		StartTime: "09:00",
		EndTime:   "10:30",
		Pattern:   "weekly",
		Weekdays:  []int{1, 3},
		ValidFrom: "2026-09-01",
	}
}

func TestCreateRecurringEventHandler(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewCreateRecurringEventHandler(e.events, e.outbox, e.uow)

	result, err := handler.Handle(ctx, CreateRecurringEventCommand{RecurringEventInput: lecture()})
	require.NoError(t, err)

	saved, err := e.events.FindByID(ctx, result.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", saved.Name())
	assert.Equal(t, domain.CategoryClass, saved.Category())
	assert.Equal(t, []int{1, 3}, saved.Weekdays().Ints())
	require.NotNil(t, saved.ValidFrom())
	assert.Equal(t, "2026-09-01", saved.ValidFrom().Format("2006-01-02"))
	assert.Equal(t, []string{domain.RoutingKeyEventSaved}, e.routingKeys(t))
}

func TestCreateRecurringEventHandler_DefaultsToWeekly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewCreateRecurringEventHandler(e.events, e.outbox, e.uow)

	in := lecture()
	in.Pattern = ""
	result, err := handler.Handle(ctx, CreateRecurringEventCommand{RecurringEventInput: in})
	require.NoError(t, err)

	saved, err := e.events.FindByID(ctx, result.EventID)
	require.NoError(t, err)
	assert.Equal(t, domain.PatternWeekly, saved.Pattern())
}

func TestCreateRecurringEventHandler_Invalid(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewCreateRecurringEventHandler(e.events, e.outbox, e.uow)

	mutations := map[string]func(*RecurringEventInput){
		"empty name":    func(in *RecurringEventInput) { in.Name = " " },
		"bad category":  func(in *RecurringEventInput) { in.Category = "party" },
		"bad start":     func(in *RecurringEventInput) { in.StartTime = "9am" },
		"bad pattern":   func(in *RecurringEventInput) { in.Pattern = "monthly" },
		"bad weekday":   func(in *RecurringEventInput) { in.Weekdays = []int{7} },
		"bad date":      func(in *RecurringEventInput) { in.ValidUntil = "next year" },
		"reversed span": func(in *RecurringEventInput) { in.ValidUntil = "2026-08-01" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := lecture()
			mutate(&in)
			_, err := handler.Handle(ctx, CreateRecurringEventCommand{RecurringEventInput: in})
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
		})
	}

	all, err := e.events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, e.routingKeys(t))
}

func TestUpdateAndDeleteRecurringEventHandlers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created, err := NewCreateRecurringEventHandler(e.events, e.outbox, e.uow).
		Handle(ctx, CreateRecurringEventCommand{RecurringEventInput: lecture()})
	require.NoError(t, err)

	in := lecture()
	in.Name = "Linear Algebra II"
	in.Pattern = "daily"
	in.Weekdays = nil
	err = NewUpdateRecurringEventHandler(e.events, e.outbox, e.uow).
		Handle(ctx, UpdateRecurringEventCommand{EventID: created.EventID, RecurringEventInput: in})
	require.NoError(t, err)

	saved, err := e.events.FindByID(ctx, created.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra II", saved.Name())
	assert.Equal(t, domain.PatternDaily, saved.Pattern())

	err = NewUpdateRecurringEventHandler(e.events, e.outbox, e.uow).
		Handle(ctx, UpdateRecurringEventCommand{EventID: uuid.New(), RecurringEventInput: in})
	assert.ErrorIs(t, err, domain.ErrRecurringEventNotFound)

	deleteHandler := NewDeleteRecurringEventHandler(e.events, e.outbox, e.uow)
	require.NoError(t, deleteHandler.Handle(ctx, DeleteRecurringEventCommand{EventID: created.EventID}))
	_, err = e.events.FindByID(ctx, created.EventID)
	assert.ErrorIs(t, err, domain.ErrRecurringEventNotFound)
	assert.ErrorIs(t, deleteHandler.Handle(ctx, DeleteRecurringEventCommand{EventID: created.EventID}), domain.ErrRecurringEventNotFound)

	assert.Equal(t, []string{
		domain.RoutingKeyEventSaved,
		domain.RoutingKeyEventSaved,
		domain.RoutingKeyEventDeleted,
	}, e.routingKeys(t))
}

const timetable = `BEGIN:VCALENDAR
BEGIN:VEVENT
SUMMARY:Chemistry Lab
DTSTART:20260907T140000
DTEND:20260907T160000
RRULE:FREQ=WEEKLY;BYDAY=MO,WE
END:VEVENT
BEGIN:VEVENT
SUMMARY:Study group
DTSTART:20260908T180000
END:VEVENT
BEGIN:VEVENT
SUMMARY:Coffee
DTSTART:20260908T101500
DTEND:20260908T104500
END:VEVENT
BEGIN:VEVENT
SUMMARY:All hands
DTSTART;VALUE=DATE:20260909
END:VEVENT
BEGIN:VEVENT
DTSTART:20260909T090000
END:VEVENT
END:VCALENDAR
`

func TestImportCalendarHandler_Text(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewImportCalendarHandler(e.events, e.outbox, e.uow, nil, nil)

	result, err := handler.Handle(ctx, ImportCalendarCommand{Text: timetable})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Blocks)
	assert.Equal(t, 4, result.Parsed)
	assert.Len(t, result.Imported, 2)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, "Coffee", result.Skipped[0].Name)
	assert.Equal(t, "All hands", result.Skipped[1].Name)

	saved, err := e.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	byName := map[string]*domain.RecurringEvent{}
	for _, ev := range saved {
		byName[ev.Name()] = ev
	}

	lab := byName["Chemistry Lab"]
	require.NotNil(t, lab)
	assert.Equal(t, domain.PatternWeekly, lab.Pattern())
	assert.Equal(t, []int{1, 3}, lab.Weekdays().Ints())
	assert.Equal(t, domain.CategoryOther, lab.Category())
	assert.Equal(t, "16:00", lab.End().String())

	group := byName["Study group"]
	require.NotNil(t, group)
	assert.Equal(t, domain.PatternDaily, group.Pattern())
	assert.Equal(t, "19:00", group.End().String())

	keys := e.routingKeys(t)
	assert.Len(t, keys, 3)
	assert.Equal(t, domain.RoutingKeyImported, keys[len(keys)-1])
}

func TestImportCalendarHandler_DryRun(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewImportCalendarHandler(e.events, e.outbox, e.uow, nil, nil)

	result, err := handler.Handle(ctx, ImportCalendarCommand{Text: timetable, DryRun: true})
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)

	saved, err := e.events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Empty(t, e.routingKeys(t))
}

type stubFetcher struct {
	body string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func TestImportCalendarHandler_URL(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	fetcher := &stubFetcher{body: timetable}
	handler := NewImportCalendarHandler(e.events, e.outbox, e.uow, fetcher, nil)

	result, err := handler.Handle(ctx, ImportCalendarCommand{URL: "https://uni.example/timetable.ics"})
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Equal(t, []string{"https://uni.example/timetable.ics"}, fetcher.urls)

	fetcher.err = errors.New("boom")
	_, err = handler.Handle(ctx, ImportCalendarCommand{URL: "https://uni.example/timetable.ics"})
	assert.EqualError(t, err, "boom")
}

func TestImportCalendarHandler_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	withoutFetcher := NewImportCalendarHandler(e.events, e.outbox, e.uow, nil, nil)

	_, err := withoutFetcher.Handle(ctx, ImportCalendarCommand{})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
	_, err = withoutFetcher.Handle(ctx, ImportCalendarCommand{URL: "https://uni.example/a.ics"})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
	_, err = withoutFetcher.Handle(ctx, ImportCalendarCommand{Text: timetable, URL: "https://uni.example/a.ics"})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
}

func TestImportCalendarHandler_NothingUsable(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewImportCalendarHandler(e.events, e.outbox, e.uow, nil, nil)

	result, err := handler.Handle(ctx, ImportCalendarCommand{Text: "not a calendar"})
	require.NoError(t, err)
	assert.Zero(t, result.Blocks)
	assert.Empty(t, result.Imported)
	assert.Equal(t, []string{domain.RoutingKeyImported}, e.routingKeys(t))
}
