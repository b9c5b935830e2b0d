package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
)

// SleepRepository stores the singleton sleep preference in row id=1.
type SleepRepository struct {
	conn database.Connection
}

// NewSleepRepository creates a sleep repository.
func NewSleepRepository(conn database.Connection) *SleepRepository {
	return &SleepRepository{conn: conn}
}

// Get returns nil when nothing has been saved yet.
func (r *SleepRepository) Get(ctx context.Context) (*domain.SleepSchedule, error) {
	var (
		bed, wake          string
		hours              float64
		optimize, flexible int
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT bedtime, wake_time, desired_hours, optimize, flexible FROM sleep_schedule WHERE id = 1`).
		Scan(&bed, &wake, &hours, &optimize, &flexible)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load sleep schedule: %w", err)
	}

	s, err := domain.NewSleepSchedule(bed, wake, hours, optimize != 0, flexible != 0)
	if err != nil {
		return nil, fmt.Errorf("stored sleep schedule: %w", err)
	}
	return &s, nil
}

// Save replaces the preference wholesale.
func (r *SleepRepository) Save(ctx context.Context, s domain.SleepSchedule) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, database.Rebind(r.conn.Driver(),
		`INSERT INTO sleep_schedule (id, bedtime, wake_time, desired_hours, optimize, flexible, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			bedtime = excluded.bedtime,
			wake_time = excluded.wake_time,
			desired_hours = excluded.desired_hours,
			optimize = excluded.optimize,
			flexible = excluded.flexible,
			updated_at = excluded.updated_at`),
		s.Bedtime.String(), s.WakeTime.String(), s.DesiredHours,
		database.BoolToInt(s.Optimize), database.BoolToInt(s.Flexible), database.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save sleep schedule: %w", err)
	}
	return nil
}
