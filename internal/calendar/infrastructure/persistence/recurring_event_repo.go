package persistence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/calendar/domain"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const eventColumns = `id, name, description, category, start_time, end_time, pattern, weekdays,
	valid_from, valid_until, created_at, updated_at`

// RecurringEventRepository implements domain.RecurringEventRepository.
type RecurringEventRepository struct {
	conn database.Connection
}

// NewRecurringEventRepository creates a recurring event repository.
func NewRecurringEventRepository(conn database.Connection) *RecurringEventRepository {
	return &RecurringEventRepository{conn: conn}
}

func (r *RecurringEventRepository) q(query string) string {
	return database.Rebind(r.conn.Driver(), query)
}

// Save upserts the event.
func (r *RecurringEventRepository) Save(ctx context.Context, e *domain.RecurringEvent) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, r.q(`INSERT INTO recurring_events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			pattern = excluded.pattern,
			weekdays = excluded.weekdays,
			valid_from = excluded.valid_from,
			valid_until = excluded.valid_until,
			updated_at = excluded.updated_at`),
		e.ID().String(),
		e.Name(),
		e.Description(),
		string(e.Category()),
		e.Start().String(),
		e.End().String(),
		string(e.Pattern()),
		encodeWeekdays(e.Weekdays()),
		database.FormatOptionalTime(e.ValidFrom()),
		database.FormatOptionalTime(e.ValidUntil()),
		database.FormatTime(e.CreatedAt()),
		database.FormatTime(e.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save recurring event: %w", err)
	}
	return nil
}

func (r *RecurringEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.RecurringEvent, error) {
	e, err := scanEvent(database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		r.q(`SELECT `+eventColumns+` FROM recurring_events WHERE id = ?`), id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrRecurringEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns every event ordered by start time.
func (r *RecurringEventRepository) List(ctx context.Context) ([]*domain.RecurringEvent, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+eventColumns+` FROM recurring_events ORDER BY start_time, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring events: %w", err)
	}
	defer rows.Close()

	var out []*domain.RecurringEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *RecurringEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, r.q(`DELETE FROM recurring_events WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("delete recurring event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRecurringEventNotFound
	}
	return nil
}

func scanEvent(row database.Row) (*domain.RecurringEvent, error) {
	var (
		id, name, description, category string
		start, end, pattern, weekdays   string
		validFrom, validUntil           *string
		createdAt, updatedAt            string
	)
	if err := row.Scan(&id, &name, &description, &category, &start, &end, &pattern, &weekdays,
		&validFrom, &validUntil, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recurring event id: %w", err)
	}
	d := domain.Details{
		Name:        name,
		Description: description,
		Category:    domain.Category(category),
		Pattern:     domain.Pattern(pattern),
	}
	if d.Start, err = schedulingDomain.ParseClock(start); err != nil {
		return nil, err
	}
	if d.End, err = schedulingDomain.ParseClock(end); err != nil {
		return nil, err
	}
	if d.Weekdays, err = decodeWeekdays(weekdays); err != nil {
		return nil, err
	}
	if d.ValidFrom, err = database.ParseOptionalTime(validFrom); err != nil {
		return nil, err
	}
	if d.ValidUntil, err = database.ParseOptionalTime(validUntil); err != nil {
		return nil, err
	}
	created, err := database.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := database.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateRecurringEvent(eid, created, updated, d), nil
}

// Weekdays are stored as "1,3,5".
func encodeWeekdays(w domain.Weekdays) string {
	parts := make([]string, 0, len(w))
	for _, d := range w.Ints() {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) (domain.Weekdays, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid stored weekday %q: %w", part, err)
		}
		days = append(days, d)
	}
	return domain.NewWeekdays(days)
}
