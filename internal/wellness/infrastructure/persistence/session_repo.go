package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// StudySessionRepository implements wellness.StudySessionRepository.
type StudySessionRepository struct {
	conn database.Connection
}

// NewStudySessionRepository creates a study session repository.
func NewStudySessionRepository(conn database.Connection) *StudySessionRepository {
	return &StudySessionRepository{conn: conn}
}

func (r *StudySessionRepository) Save(ctx context.Context, s *wellness.StudySession) error {
	var taskID *string
	if id := s.TaskID(); id != nil {
		v := id.String()
		taskID = &v
	}
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		database.Rebind(r.conn.Driver(), `INSERT INTO study_sessions
			(id, task_id, start_time, end_time, duration_minutes, energy_level, productivity_rating, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID().String(), taskID, database.FormatTime(s.Start()), database.FormatTime(s.End()),
		s.DurationMinutes(), s.Energy().String(), s.ProductivityRating(), database.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save study session: %w", err)
	}
	return nil
}

// List returns sessions, most recent first.
func (r *StudySessionRepository) List(ctx context.Context) ([]*wellness.StudySession, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT id, task_id, start_time, end_time, duration_minutes, energy_level, productivity_rating
		FROM study_sessions ORDER BY start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	defer rows.Close()

	var out []*wellness.StudySession
	for rows.Next() {
		var (
			id, start, end, energy string
			taskID                 *string
			minutes, rating        int
		)
		if err := rows.Scan(&id, &taskID, &start, &end, &minutes, &energy, &rating); err != nil {
			return nil, err
		}
		sid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid session id: %w", err)
		}
		var tid *uuid.UUID
		if taskID != nil {
			parsed, err := uuid.Parse(*taskID)
			if err != nil {
				return nil, fmt.Errorf("invalid session task id: %w", err)
			}
			tid = &parsed
		}
		startAt, err := database.ParseTime(start)
		if err != nil {
			return nil, err
		}
		endAt, err := database.ParseTime(end)
		if err != nil {
			return nil, err
		}
		out = append(out, wellness.RehydrateStudySession(sid, tid, startAt, endAt, minutes, wellness.EnergyLevel(energy), rating))
	}
	return out, rows.Err()
}

// TotalMinutes sums the duration of every session.
func (r *StudySessionRepository) TotalMinutes(ctx context.Context) (int, error) {
	var total int
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT COALESCE(SUM(duration_minutes), 0) FROM study_sessions`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum study minutes: %w", err)
	}
	return total, nil
}
