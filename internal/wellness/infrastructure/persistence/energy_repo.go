package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// ObservationRepository implements wellness.ObservationRepository.
type ObservationRepository struct {
	conn database.Connection
}

// NewObservationRepository creates an energy log repository.
func NewObservationRepository(conn database.Connection) *ObservationRepository {
	return &ObservationRepository{conn: conn}
}

// Append adds one observation to the log.
func (r *ObservationRepository) Append(ctx context.Context, o wellness.Observation) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		database.Rebind(r.conn.Driver(), `INSERT INTO energy_observations (id, weekday, hour, level, recorded_at) VALUES (?, ?, ?, ?, ?)`),
		o.ID.String(), int(o.Weekday), o.Hour, o.Level.String(), database.FormatTime(o.RecordedAt))
	if err != nil {
		return fmt.Errorf("append energy observation: %w", err)
	}
	return nil
}

// List returns the whole log in recording order.
func (r *ObservationRepository) List(ctx context.Context) ([]wellness.Observation, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT id, weekday, hour, level, recorded_at FROM energy_observations ORDER BY recorded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list energy observations: %w", err)
	}
	defer rows.Close()

	var out []wellness.Observation
	for rows.Next() {
		var (
			id, level, recordedAt string
			weekday, hour         int
		)
		if err := rows.Scan(&id, &weekday, &hour, &level, &recordedAt); err != nil {
			return nil, err
		}
		oid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid observation id: %w", err)
		}
		at, err := database.ParseTime(recordedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, wellness.Observation{
			ID:         oid,
			Weekday:    time.Weekday(weekday),
			Hour:       hour,
			Level:      wellness.EnergyLevel(level),
			RecordedAt: at,
		})
	}
	return out, rows.Err()
}
