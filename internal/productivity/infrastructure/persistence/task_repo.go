package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

const taskColumns = `id, title, description, category, priority, status, due_date,
	estimated_hours, energy_level, completed_hours, created_at, updated_at, completed_at`

// TaskRepository implements task.Repository for SQLite and PostgreSQL.
type TaskRepository struct {
	conn database.Connection
}

// NewTaskRepository creates a task repository.
func NewTaskRepository(conn database.Connection) *TaskRepository {
	return &TaskRepository{conn: conn}
}

func (r *TaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *TaskRepository) q(query string) string {
	return database.Rebind(r.conn.Driver(), query)
}

// Save upserts the task row and replaces its subtasks.
func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	ex := r.exec(ctx)

	var estimate *float64
	if h := t.EstimatedHours(); h != nil {
		v := h.Float()
		estimate = &v
	}
	var energy *string
	if e := t.EnergyPreference(); e != nil {
		s := e.String()
		energy = &s
	}

	_, err := ex.Exec(ctx, r.q(`INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			priority = excluded.priority,
			status = excluded.status,
			due_date = excluded.due_date,
			estimated_hours = excluded.estimated_hours,
			energy_level = excluded.energy_level,
			completed_hours = excluded.completed_hours,
			updated_at = excluded.updated_at,
			completed_at = excluded.completed_at`),
		t.ID().String(),
		t.Title(),
		t.Description(),
		t.Category().String(),
		int(t.Priority()),
		t.Status().String(),
		database.FormatOptionalTime(t.DueDate()),
		estimate,
		energy,
		t.CompletedHours(),
		database.FormatTime(t.CreatedAt()),
		database.FormatTime(t.UpdatedAt()),
		database.FormatOptionalTime(t.CompletedAt()),
	)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	if _, err := ex.Exec(ctx, r.q(`DELETE FROM subtasks WHERE task_id = ?`), t.ID().String()); err != nil {
		return fmt.Errorf("clear subtasks: %w", err)
	}
	for _, s := range t.Subtasks() {
		_, err := ex.Exec(ctx, r.q(`INSERT INTO subtasks (id, task_id, title, status, order_index) VALUES (?, ?, ?, ?, ?)`),
			s.ID().String(), t.ID().String(), s.Title(), s.Status().String(), s.OrderIndex())
		if err != nil {
			return fmt.Errorf("save subtask: %w", err)
		}
	}
	return nil
}

// FindByID loads a task with its subtasks.
func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	snap, err := scanTask(r.exec(ctx).QueryRow(ctx, r.q(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	if err := r.loadSubtasks(ctx, []*task.Snapshot{snap}); err != nil {
		return nil, err
	}
	return task.Rehydrate(*snap), nil
}

// FindBySubtaskID loads the task owning the subtask.
func (r *TaskRepository) FindBySubtaskID(ctx context.Context, subtaskID uuid.UUID) (*task.Task, error) {
	var taskID string
	err := r.exec(ctx).QueryRow(ctx, r.q(`SELECT task_id FROM subtasks WHERE id = ?`), subtaskID.String()).Scan(&taskID)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrSubtaskNotFound
		}
		return nil, err
	}
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	return r.FindByID(ctx, id)
}

// List returns tasks matching the filter, oldest first.
func (r *TaskRepository) List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category.String())
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"
	return r.query(ctx, query, args...)
}

// FindOpen returns every task that is not completed, oldest first.
func (r *TaskRepository) FindOpen(ctx context.Context) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status <> ? ORDER BY created_at, id`, task.StatusCompleted.String())
}

// Delete removes a task with its subtasks and manual assignments.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ex := r.exec(ctx)
	for _, stmt := range []string{
		`DELETE FROM subtasks WHERE task_id = ?`,
		`DELETE FROM scheduled_assignments WHERE task_id = ?`,
		`UPDATE study_sessions SET task_id = NULL WHERE task_id = ?`,
	} {
		if _, err := ex.Exec(ctx, r.q(stmt), id.String()); err != nil {
			return fmt.Errorf("delete task dependents: %w", err)
		}
	}

	res, err := ex.Exec(ctx, r.q(`DELETE FROM tasks WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var snaps []*task.Snapshot
	for rows.Next() {
		snap, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadSubtasks(ctx, snaps); err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, len(snaps))
	for i, s := range snaps {
		tasks[i] = task.Rehydrate(*s)
	}
	return tasks, nil
}

func (r *TaskRepository) loadSubtasks(ctx context.Context, snaps []*task.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	byID := make(map[string]*task.Snapshot, len(snaps))
	placeholders := make([]string, len(snaps))
	args := make([]any, len(snaps))
	for i, s := range snaps {
		byID[s.ID.String()] = s
		placeholders[i] = "?"
		args[i] = s.ID.String()
	}

	rows, err := r.exec(ctx).Query(ctx, r.q(`SELECT id, task_id, title, status, order_index FROM subtasks
		WHERE task_id IN (`+strings.Join(placeholders, ", ")+`) ORDER BY task_id, order_index`), args...)
	if err != nil {
		return fmt.Errorf("load subtasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, taskID, title, status string
			order                     int
		)
		if err := rows.Scan(&id, &taskID, &title, &status, &order); err != nil {
			return err
		}
		sid, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid subtask id: %w", err)
		}
		owner := byID[taskID]
		owner.Subtasks = append(owner.Subtasks, task.RehydrateSubtask(sid, owner.ID, title, task.Status(status), order))
	}
	return rows.Err()
}

func scanTask(row database.Row) (*task.Snapshot, error) {
	var (
		id, title, description, category, status string
		priority                                 int
		dueDate, energy, completedAt             *string
		estimate                                 *float64
		completedHours                           float64
		createdAt, updatedAt                     string
	)
	if err := row.Scan(&id, &title, &description, &category, &priority, &status, &dueDate,
		&estimate, &energy, &completedHours, &createdAt, &updatedAt, &completedAt); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	snap := &task.Snapshot{
		ID:             taskID,
		Title:          title,
		Description:    description,
		Category:       task.Category(category),
		Priority:       value_objects.Priority(priority),
		Status:         task.Status(status),
		CompletedHours: completedHours,
	}
	if snap.DueDate, err = database.ParseOptionalTime(dueDate); err != nil {
		return nil, err
	}
	if snap.CompletedAt, err = database.ParseOptionalTime(completedAt); err != nil {
		return nil, err
	}
	if snap.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if snap.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	if estimate != nil {
		h := value_objects.Hours(*estimate)
		snap.EstimatedHours = &h
	}
	if energy != nil && *energy != "" {
		level := wellness.EnergyLevel(*energy)
		snap.Energy = &level
	}
	return snap, nil
}
