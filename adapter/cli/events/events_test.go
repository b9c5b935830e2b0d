package events

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli/clitest"
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := &printer{out: &out}
	assert.Equal(t, []string{eventbus.AllEvents}, p.EventTypes())

	id := uuid.New()
	err := p.Handle(context.Background(), &eventbus.ConsumedEvent{
		EventID:       uuid.New(),
		AggregateID:   id,
		AggregateType: "task",
		RoutingKey:    "task.created",
		OccurredAt:    time.Now(),
		Metadata:      domain.EventMetadata{CorrelationID: "abc"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "task.created")
	assert.Contains(t, out.String(), "task "+id.String())
	assert.Contains(t, out.String(), "correlation=abc")
}

func TestPrinter_ThroughRegistry(t *testing.T) {
	var out bytes.Buffer
	registry := eventbus.NewConsumerRegistry(nil)
	registry.Register(&printer{out: &out})

	require.NoError(t, registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey:    "energy.recorded",
		AggregateType: "energy_observation",
	}))
	assert.Contains(t, out.String(), "energy.recorded")
}

func TestWatch_RequiresBroker(t *testing.T) {
	clitest.Setup(t)

	_, err := clitest.Run(t, watchCmd)
	assert.ErrorIs(t, err, ErrNoBroker)
}
