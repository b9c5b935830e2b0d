package queries

import (
	"context"
	"strings"
	"testing"
	"time"

	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	calendarPersistence "github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	productivityPersistence "github.com/felixgeelhaar/tempo/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/scheduling/infrastructure/persistence"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	wellnessPersistence "github.com/felixgeelhaar/tempo/internal/wellness/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-20 is a Tuesday.
var target = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type fixture struct {
	generator   *GenerateScheduleHandler
	assignments *persistence.AssignmentRepository
	sleep       *persistence.SleepRepository
	pinnedTask  *task.Task
}

func newTask(t *testing.T, title string, p value_objects.Priority, hours float64, energy *wellness.EnergyLevel) *task.Task {
	t.Helper()
	var est *value_objects.Hours
	if hours > 0 {
		h, err := value_objects.NewHours(hours)
		require.NoError(t, err)
		est = &h
	}
	tk, err := task.NewTask(title, task.CategoryAssignment, p, est)
	require.NoError(t, err)
	if energy != nil {
		tk.SetEnergyPreference(energy)
	}
	return tk
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	conn := databasetest.OpenSQLite(t)

	tasks := productivityPersistence.NewTaskRepository(conn)
	events := calendarPersistence.NewRecurringEventRepository(conn)
	observations := wellnessPersistence.NewObservationRepository(conn)
	sleep := persistence.NewSleepRepository(conn)
	assignments := persistence.NewAssignmentRepository(conn)

	s, err := schedulingDomain.NewSleepSchedule("23:00", "07:00", 8, false, false)
	require.NoError(t, err)
	require.NoError(t, sleep.Save(ctx, s))

	lecture, err := calendarDomain.NewRecurringEvent(calendarDomain.Details{
		Name:    "Lectures",
		Start:   schedulingDomain.MustClock("09:00"),
		End:     schedulingDomain.MustClock("12:00"),
		Pattern: calendarDomain.PatternDaily,
	})
	require.NoError(t, err)
	require.NoError(t, events.Save(ctx, lecture))

	o, err := wellness.NewObservation(int(time.Tuesday), 14, wellness.EnergyHigh, target)
	require.NoError(t, err)
	require.NoError(t, observations.Append(ctx, o))

	high := wellness.EnergyHigh
	essay := newTask(t, "Essay draft", value_objects.PriorityHigh, 2, &high)
	reading := newTask(t, "Reading", value_objects.PriorityMedium, 0, nil)
	pinnedTask := newTask(t, "Lab report", value_objects.PriorityHigh, 1, nil)
	done := newTask(t, "Old quiz", value_objects.PriorityHigh, 1, nil)
	done.Complete()
	for _, tk := range []*task.Task{essay, reading, pinnedTask, done} {
		require.NoError(t, tasks.Save(ctx, tk))
	}

	pin, err := schedulingDomain.NewManualAssignment(pinnedTask.ID(), target, schedulingDomain.MustClock("19:00"), schedulingDomain.MustClock("20:00"), "")
	require.NoError(t, err)
	require.NoError(t, assignments.Insert(ctx, pin))

	generator := NewGenerateScheduleHandler(tasks, events, observations, sleep, assignments,
		database.NewUnitOfWork(conn), services.NewSchedulerEngine(services.DefaultSchedulerConfig()), time.UTC, nil)
	generator.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }

	return fixture{generator: generator, assignments: assignments, sleep: sleep, pinnedTask: pinnedTask}
}

func TestGenerateScheduleHandler(t *testing.T) {
	f := setup(t)

	dto, err := f.generator.Handle(context.Background(), GenerateScheduleQuery{Date: target})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-20", dto.Date)
	assert.Equal(t, "Tuesday", dto.Weekday)
	require.NotNil(t, dto.Sleep)
	assert.Equal(t, "23:00", dto.Sleep.Bedtime)
	require.Len(t, dto.RecurringEvents, 1)

	hours := make([]int, 0, len(dto.FreeSlots))
	for _, s := range dto.FreeSlots {
		hours = append(hours, s.Hour)
	}
	assert.Equal(t, []int{7, 8, 12, 13, 14, 15, 16, 17, 18, 20, 21, 22}, hours)
	assert.Equal(t, "high", dto.FreeSlots[4].EnergyLevel)
	assert.Equal(t, "medium", dto.FreeSlots[0].EnergyLevel)

	require.Len(t, dto.Assignments, 2)
	assert.Equal(t, "Essay draft", dto.Assignments[0].Title)
	assert.Equal(t, "14:00", dto.Assignments[0].StartTime)
	assert.Equal(t, "16:00", dto.Assignments[0].EndTime)
	assert.Equal(t, string(schedulingDomain.ReasonEnergyMatch), dto.Assignments[0].Reason)
	assert.Equal(t, "Reading", dto.Assignments[1].Title)
	assert.Equal(t, "16:00", dto.Assignments[1].StartTime)
	assert.Equal(t, 2, dto.TotalAssignedTasks)
	assert.Equal(t, 3, dto.TotalAssignedHours)

	require.Len(t, dto.Pinned, 1)
	assert.Equal(t, f.pinnedTask.ID(), dto.Pinned[0].TaskID)
	assert.True(t, dto.Pinned[0].IsManual)

	starts := make([]string, 0, len(dto.Timeline))
	for _, e := range dto.Timeline {
		starts = append(starts, e.Start)
	}
	assert.Equal(t, []string{"00:00", "09:00", "14:00", "16:00", "19:00", "23:00"}, starts)
	assert.Equal(t, services.EntryPinned, dto.Timeline[4].Kind)
}

func TestGenerateScheduleHandler_PastHoursOfToday(t *testing.T) {
	f := setup(t)
	f.generator.now = func() time.Time { return time.Date(2026, 10, 20, 15, 20, 0, 0, time.UTC) }

	dto, err := f.generator.Handle(context.Background(), GenerateScheduleQuery{Date: target})
	require.NoError(t, err)
	require.NotEmpty(t, dto.FreeSlots)
	assert.Equal(t, 16, dto.FreeSlots[0].Hour)
}

func TestGenerateScheduleHandler_RequiresDate(t *testing.T) {
	f := setup(t)
	_, err := f.generator.Handle(context.Background(), GenerateScheduleQuery{})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
}

func TestExportScheduleHandler(t *testing.T) {
	f := setup(t)
	handler := NewExportScheduleHandler(f.generator, time.UTC)

	out, err := handler.Handle(context.Background(), ExportScheduleQuery{Date: target})
	require.NoError(t, err)

	doc := string(out)
	assert.Equal(t, 3, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Contains(t, doc, "SUMMARY:Essay draft")
	assert.Contains(t, doc, "SUMMARY:Lab report")
	assert.Contains(t, doc, "DTSTART:20261020T140000Z")
}

func TestGetSleepScheduleAndListPinned(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	s, err := NewGetSleepScheduleHandler(f.sleep).Handle(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "07:00", s.WakeTime)

	pinned, err := NewListPinnedHandler(f.assignments).Handle(ctx, ListPinnedQuery{Date: target})
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, "Lab report", pinned[0].Title)

	none, err := NewListPinnedHandler(f.assignments).Handle(ctx, ListPinnedQuery{Date: target.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Empty(t, none)
}
