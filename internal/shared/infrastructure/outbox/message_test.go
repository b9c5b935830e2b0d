package outbox

import (
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
	Data string `json:"data"`
}

func newTestEvent(aggregateID uuid.UUID, data string) *testEvent {
	return &testEvent{
		BaseEvent: domain.NewBaseEvent(aggregateID, "TestAggregate", "test.event.created"),
		Data:      data,
	}
}

func TestNewMessage(t *testing.T) {
	aggregateID := uuid.New()
	event := newTestEvent(aggregateID, "test data")
	event.SetMetadata(domain.EventMetadata{CorrelationID: "corr", CausationID: "cause"})

	msg, err := NewMessage(event)

	require.NoError(t, err)
	assert.Equal(t, event.EventID(), msg.EventID)
	assert.Equal(t, "TestAggregate", msg.AggregateType)
	assert.Equal(t, aggregateID, msg.AggregateID)
	assert.Equal(t, "test.event.created", msg.RoutingKey)
	assert.JSONEq(t, `{"data":"test data"}`, string(msg.Payload))
	assert.Equal(t, "corr", msg.Metadata.CorrelationID)
	assert.Equal(t, event.OccurredAt(), msg.CreatedAt)
	assert.False(t, msg.IsPublished())
	assert.Zero(t, msg.RetryCount)
}

func TestMessage_Envelope(t *testing.T) {
	event := newTestEvent(uuid.New(), "payload")
	msgs, err := NewMessages([]domain.DomainEvent{event})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	body, err := msgs[0].Envelope().Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event.EventID().String(), decoded["event_id"])
	assert.Equal(t, "test.event.created", decoded["routing_key"])
	assert.Equal(t, map[string]any{"data": "payload"}, decoded["payload"])
}

func TestMessage_CanRetry(t *testing.T) {
	msg := &Message{}
	assert.True(t, msg.CanRetry(3))

	msg.RetryCount = 3
	assert.False(t, msg.CanRetry(3))
}
