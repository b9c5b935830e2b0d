package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T, title string, hours float64) *task.Task {
	t.Helper()
	h, err := value_objects.NewHours(hours)
	require.NoError(t, err)
	tk, err := task.NewTask(title, task.CategoryAssignment, value_objects.PriorityHigh, &h)
	require.NoError(t, err)
	return tk
}

func TestTaskRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(databasetest.OpenSQLite(t))

	tk := newTask(t, "Thesis", 6)
	due := time.Date(2026, 5, 1, 17, 0, 0, 0, time.UTC)
	high := wellness.EnergyHigh
	tk.SetDueDate(&due)
	tk.SetEnergyPreference(&high)
	tk.SetDescription("chapter two")
	require.NoError(t, repo.Save(ctx, tk))

	found, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)

	assert.Equal(t, "Thesis", found.Title())
	assert.Equal(t, "chapter two", found.Description())
	assert.Equal(t, task.CategoryAssignment, found.Category())
	assert.Equal(t, value_objects.PriorityHigh, found.Priority())
	require.NotNil(t, found.DueDate())
	assert.True(t, due.Equal(*found.DueDate()))
	require.NotNil(t, found.EstimatedHours())
	assert.Equal(t, 6.0, found.EstimatedHours().Float())
	require.NotNil(t, found.EnergyPreference())
	assert.Equal(t, wellness.EnergyHigh, *found.EnergyPreference())
	assert.Empty(t, found.DomainEvents())

	require.Len(t, found.Subtasks(), 3)
	assert.Equal(t, tk.Subtasks()[0].Title(), found.Subtasks()[0].Title())
	assert.Equal(t, 2, found.Subtasks()[2].OrderIndex())
}

func TestTaskRepository_SaveUpdatesExistingRow(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(databasetest.OpenSQLite(t))
	tk := newTask(t, "Essay", 2)
	require.NoError(t, repo.Save(ctx, tk))

	title := "Essay draft"
	require.NoError(t, tk.Apply(task.Update{Title: &title}))
	tk.Complete()
	require.NoError(t, repo.Save(ctx, tk))

	found, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, "Essay draft", found.Title())
	assert.Equal(t, task.StatusCompleted, found.Status())
	assert.NotNil(t, found.CompletedAt())

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTaskRepository_FindBySubtaskID(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(databasetest.OpenSQLite(t))
	tk := newTask(t, "Project", 10)
	require.NoError(t, repo.Save(ctx, tk))

	found, err := repo.FindBySubtaskID(ctx, tk.Subtasks()[1].ID())
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), found.ID())

	_, err = repo.FindBySubtaskID(ctx, uuid.New())
	assert.ErrorIs(t, err, task.ErrSubtaskNotFound)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(databasetest.OpenSQLite(t))

	a := newTask(t, "a", 1)
	exam, err := task.NewTask("exam prep", task.CategoryExam, value_objects.PriorityLow, nil)
	require.NoError(t, err)
	done := newTask(t, "done", 1)
	done.Complete()
	for _, tk := range []*task.Task{a, exam, done} {
		require.NoError(t, repo.Save(ctx, tk))
	}

	all, err := repo.List(ctx, task.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	exams, err := repo.List(ctx, task.ListFilter{Category: task.CategoryExam})
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Nil(t, exams[0].EstimatedHours())

	completed, err := repo.List(ctx, task.ListFilter{Status: task.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID(), completed[0].ID())

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestTaskRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	conn := databasetest.OpenSQLite(t)
	repo := NewTaskRepository(conn)
	tk := newTask(t, "Project", 10)
	require.NoError(t, repo.Save(ctx, tk))

	require.NoError(t, repo.Delete(ctx, tk.ID()))

	_, err := repo.FindByID(ctx, tk.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	var n int
	require.NoError(t, conn.QueryRow(ctx, database.Rebind(conn.Driver(), "SELECT COUNT(*) FROM subtasks WHERE task_id = ?"), tk.ID().String()).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, tk.ID()), task.ErrTaskNotFound)
}
