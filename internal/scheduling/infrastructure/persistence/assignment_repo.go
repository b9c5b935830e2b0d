package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

const assignmentSelect = `SELECT a.id, a.task_id, COALESCE(t.title, ''), a.scheduled_date, a.start_time, a.end_time,
	a.energy_level, a.reason
	FROM scheduled_assignments a LEFT JOIN tasks t ON t.id = a.task_id`

// AssignmentRepository stores manually pinned assignments.
type AssignmentRepository struct {
	conn database.Connection
}

// NewAssignmentRepository creates an assignment repository.
func NewAssignmentRepository(conn database.Connection) *AssignmentRepository {
	return &AssignmentRepository{conn: conn}
}

func (r *AssignmentRepository) q(query string) string {
	return database.Rebind(r.conn.Driver(), query)
}

func (r *AssignmentRepository) DeleteForTaskDate(ctx context.Context, taskID uuid.UUID, date time.Time) (int, error) {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		r.q(`DELETE FROM scheduled_assignments WHERE task_id = ? AND scheduled_date = ?`),
		taskID.String(), date.Format(domain.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("clear assignments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *AssignmentRepository) Insert(ctx context.Context, a domain.Assignment) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		r.q(`INSERT INTO scheduled_assignments (id, task_id, scheduled_date, start_time, end_time, energy_level, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID.String(), a.TaskID.String(), a.Date.Format(domain.DateLayout), a.Start.String(), a.End.String(),
		a.Energy.String(), string(a.Reason), database.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// FindByDate returns the date's assignments ordered by start time.
func (r *AssignmentRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Assignment, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		r.q(assignmentSelect+` WHERE a.scheduled_date = ? ORDER BY a.start_time, a.id`), date.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Assignment, error) {
	a, err := scanAssignment(database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		r.q(assignmentSelect+` WHERE a.id = ?`), id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return domain.Assignment{}, domain.ErrAssignmentNotFound
		}
		return domain.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, r.q(`DELETE FROM scheduled_assignments WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func scanAssignment(row database.Row) (domain.Assignment, error) {
	var id, taskID, title, date, start, end, energy, reason string
	if err := row.Scan(&id, &taskID, &title, &date, &start, &end, &energy, &reason); err != nil {
		return domain.Assignment{}, err
	}

	a := domain.Assignment{
		Title:    title,
		Energy:   wellness.EnergyLevel(energy),
		Reason:   domain.Reason(reason),
		IsManual: true,
	}
	var err error
	if a.ID, err = uuid.Parse(id); err != nil {
		return domain.Assignment{}, fmt.Errorf("invalid assignment id: %w", err)
	}
	if a.TaskID, err = uuid.Parse(taskID); err != nil {
		return domain.Assignment{}, fmt.Errorf("invalid assignment task id: %w", err)
	}
	if a.Date, err = domain.ParseDate(date); err != nil {
		return domain.Assignment{}, err
	}
	if a.Start, err = domain.ParseClock(start); err != nil {
		return domain.Assignment{}, err
	}
	if a.End, err = domain.ParseClock(end); err != nil {
		return domain.Assignment{}, err
	}
	return a, nil
}
