package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	wellnessPersistence "github.com/felixgeelhaar/tempo/internal/wellness/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

type seeded struct {
	tasks    *persistence.TaskRepository
	sessions *wellnessPersistence.StudySessionRepository
	overdue  *task.Task
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	conn := databasetest.OpenSQLite(t)
	s := seeded{
		tasks:    persistence.NewTaskRepository(conn),
		sessions: wellnessPersistence.NewStudySessionRepository(conn),
	}

	save := func(title string, category task.Category, hours float64, status task.Status, due *time.Time) *task.Task {
		h := value_objects.Hours(hours)
		tk, err := task.NewTask(title, category, value_objects.PriorityMedium, &h)
		require.NoError(t, err)
		tk.SetDueDate(due)
		require.NoError(t, tk.Apply(task.Update{Status: &status}))
		require.NoError(t, s.tasks.Save(ctx, tk))
		return tk
	}

	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	s.overdue = save("Overdue essay", task.CategoryAssignment, 6, task.StatusPending, &yesterday)
	save("Exam prep", task.CategoryExam, 2, task.StatusInProgress, &tomorrow)
	save("Done lab", task.CategoryAssignment, 1, task.StatusCompleted, &yesterday)

	start := today.Add(-3 * time.Hour)
	for _, minutes := range []int{90, 45} {
		session, err := wellness.NewStudySession(nil, start, start.Add(time.Duration(minutes)*time.Minute), wellness.EnergyHigh, 4)
		require.NoError(t, err)
		require.NoError(t, s.sessions.Save(ctx, session))
	}
	return s
}

func TestListTasksHandler(t *testing.T) {
	s := seed(t)
	handler := NewListTasksHandler(s.tasks)
	handler.now = func() time.Time { return today }
	ctx := context.Background()

	all, err := handler.Handle(ctx, ListTasksQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Overdue essay", all[0].Title)
	assert.True(t, all[0].Overdue)
	assert.Len(t, all[0].Subtasks, 3)
	assert.False(t, all[2].Overdue, "completed tasks are never overdue")

	exams, err := handler.Handle(ctx, ListTasksQuery{Category: "exam"})
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "in_progress", exams[0].Status)

	done, err := handler.Handle(ctx, ListTasksQuery{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.NotNil(t, done[0].CompletedAt)

	_, err = handler.Handle(ctx, ListTasksQuery{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetTaskHandler(t *testing.T) {
	s := seed(t)
	handler := NewGetTaskHandler(s.tasks)
	ctx := context.Background()

	dto, err := handler.Handle(ctx, GetTaskQuery{TaskID: s.overdue.ID()})
	require.NoError(t, err)
	assert.Equal(t, s.overdue.ID(), dto.ID)
	require.NotNil(t, dto.EstimatedHours)
	assert.Equal(t, 6.0, *dto.EstimatedHours)

	_, err = handler.Handle(ctx, GetTaskQuery{TaskID: uuid.New()})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestGetStatsHandler(t *testing.T) {
	s := seed(t)
	handler := NewGetStatsHandler(s.tasks, s.sessions)
	handler.now = func() time.Time { return today }

	stats, err := handler.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &StatsDTO{
		TotalTasks:      3,
		PendingTasks:    1,
		InProgressTasks: 1,
		CompletedTasks:  1,
		OverdueTasks:    1,
		TotalStudyHours: 2.3,
	}, stats)
}
