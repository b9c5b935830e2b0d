package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// Store implements Repository on the shared database connection.
type Store struct {
	conn database.Connection
}

// NewStore creates an outbox store.
func NewStore(conn database.Connection) *Store {
	return &Store{conn: conn}
}

func (s *Store) q(query string) string {
	return database.Rebind(s.conn.Driver(), query)
}

func (s *Store) SaveBatch(ctx context.Context, msgs []*Message) error {
	ex := database.ExecutorFromContext(ctx, s.conn)
	for _, msg := range msgs {
		metadata, err := json.Marshal(msg.Metadata)
		if err != nil {
			return err
		}
		err = ex.QueryRow(ctx, s.q(`INSERT INTO outbox
			(event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
			msg.EventID.String(), msg.AggregateType, msg.AggregateID.String(), msg.RoutingKey,
			string(msg.Payload), string(metadata), database.FormatTime(msg.CreatedAt),
		).Scan(&msg.ID)
		if err != nil {
			return fmt.Errorf("save outbox message: %w", err)
		}
	}
	return nil
}

func (s *Store) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	rows, err := database.ExecutorFromContext(ctx, s.conn).Query(ctx, s.q(`SELECT
			id, event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at,
			retry_count, next_retry_at, last_error
		FROM outbox
		WHERE published_at IS NULL AND dead_lettered_at IS NULL
			AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?`), database.FormatTime(time.Now()), limit)
	if err != nil {
		return nil, fmt.Errorf("load outbox: %w", err)
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var (
			msg                              Message
			eventID, aggregateID, createdAt  string
			payload                          string
			metadata, nextRetryAt, lastError *string
		)
		if err := rows.Scan(&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.RoutingKey,
			&payload, &metadata, &createdAt, &msg.RetryCount, &nextRetryAt, &lastError); err != nil {
			return nil, err
		}
		msg.EventID, _ = uuid.Parse(eventID)
		msg.AggregateID, _ = uuid.Parse(aggregateID)
		msg.Payload = json.RawMessage(payload)
		msg.LastError = lastError
		if metadata != nil {
			_ = json.Unmarshal([]byte(*metadata), &msg.Metadata)
		}
		if msg.CreatedAt, err = database.ParseTime(createdAt); err != nil {
			return nil, err
		}
		if msg.NextRetryAt, err = database.ParseOptionalTime(nextRetryAt); err != nil {
			return nil, err
		}
		out = append(out, &msg)
	}
	return out, rows.Err()
}

func (s *Store) MarkPublished(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, s.conn).Exec(ctx,
		s.q(`UPDATE outbox SET published_at = ? WHERE id = ?`), database.FormatTime(time.Now()), id)
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := database.ExecutorFromContext(ctx, s.conn).Exec(ctx,
		s.q(`UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`),
		errMsg, database.FormatTime(nextRetryAt), id)
	return err
}

func (s *Store) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := database.ExecutorFromContext(ctx, s.conn).Exec(ctx,
		s.q(`UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, dead_lettered_at = ? WHERE id = ?`),
		reason, database.FormatTime(time.Now()), id)
	return err
}

func (s *Store) DeleteOld(ctx context.Context, before time.Time) (int64, error) {
	res, err := database.ExecutorFromContext(ctx, s.conn).Exec(ctx,
		s.q(`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`), database.FormatTime(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
