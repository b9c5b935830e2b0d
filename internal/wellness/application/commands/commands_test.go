package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/felixgeelhaar/tempo/internal/wellness/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	observations *persistence.ObservationRepository
	sessions     *persistence.StudySessionRepository
	outbox       *outbox.Store
	uow          *database.UnitOfWork
}

func newEnv(t *testing.T) env {
	conn := databasetest.OpenSQLite(t)
	return env{
		observations: persistence.NewObservationRepository(conn),
		sessions:     persistence.NewStudySessionRepository(conn),
		outbox:       outbox.NewStore(conn),
		uow:          database.NewUnitOfWork(conn),
	}
}

func (e env) routingKeys(t *testing.T) []string {
	t.Helper()
	msgs, err := e.outbox.GetUnpublished(context.Background(), 100)
	require.NoError(t, err)
	keys := make([]string, 0, len(msgs))
	for _, m := range msgs {
		keys = append(keys, m.RoutingKey)
	}
	return keys
}

func TestRecordEnergyHandler(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewRecordEnergyHandler(e.observations, e.outbox, e.uow)

	result, err := handler.Handle(ctx, RecordEnergyCommand{Weekday: 1, Hour: 9, Level: "High"})
	require.NoError(t, err)

	log, err := e.observations.List(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, result.ObservationID, log[0].ID)
	assert.Equal(t, time.Monday, log[0].Weekday)
	assert.Equal(t, wellness.EnergyHigh, log[0].Level)
	assert.Equal(t, []string{wellness.RoutingKeyEnergyRecorded}, e.routingKeys(t))

	for _, cmd := range []RecordEnergyCommand{
		{Weekday: 7, Hour: 9, Level: "high"},
		{Weekday: 1, Hour: 24, Level: "high"},
		{Weekday: 1, Hour: 9, Level: "wired"},
	} {
		_, err := handler.Handle(ctx, cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	log, err = e.observations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestRecordStudySessionHandler(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	berlin := time.FixedZone("CET", 3600)
	handler := NewRecordStudySessionHandler(e.sessions, e.observations, e.outbox, e.uow, berlin)

	// 23:30 UTC Sunday is 00:30 Monday on the configured wall clock.
	start := time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC)
	result, err := handler.Handle(ctx, RecordStudySessionCommand{
		Start:              start,
		End:                start.Add(50 * time.Minute),
		EnergyLevel:        "low",
		ProductivityRating: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.DurationMinutes)

	log, err := e.observations.List(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, time.Monday, log[0].Weekday)
	assert.Equal(t, 0, log[0].Hour)
	assert.Equal(t, wellness.EnergyLow, log[0].Level)

	minutes, err := e.sessions.TotalMinutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, minutes)
	assert.ElementsMatch(t,
		[]string{wellness.RoutingKeySessionRecorded, wellness.RoutingKeyEnergyRecorded},
		e.routingKeys(t))
}

func TestRecordStudySessionHandler_RejectsInvalidSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	handler := NewRecordStudySessionHandler(e.sessions, e.observations, e.outbox, e.uow, time.UTC)
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	_, err := handler.Handle(ctx, RecordStudySessionCommand{Start: start, End: start, EnergyLevel: "high", ProductivityRating: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = handler.Handle(ctx, RecordStudySessionCommand{Start: start, End: start.Add(time.Hour), EnergyLevel: "high", ProductivityRating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, e.routingKeys(t))
}
