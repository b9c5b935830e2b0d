package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationRepository_AppendAndBuildHistogram(t *testing.T) {
	ctx := context.Background()
	repo := NewObservationRepository(databasetest.OpenSQLite(t))
	base := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

	for i, level := range []wellness.EnergyLevel{wellness.EnergyHigh, wellness.EnergyHigh, wellness.EnergyLow} {
		o, err := wellness.ObservationAt(base.Add(time.Duration(i)*time.Minute), level)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, o))
	}

	log, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, time.Monday, log[0].Weekday)
	assert.Equal(t, 14, log[0].Hour)

	h := wellness.NewHistogram(log)
	assert.Equal(t, wellness.EnergyHigh, h.Dominant(time.Monday, 14))
	assert.Equal(t, wellness.LevelCounts{High: 2, Low: 1}, h.DistributionFor(time.Monday)[14])
}

func TestStudySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudySessionRepository(databasetest.OpenSQLite(t))
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	first, err := wellness.NewStudySession(nil, start, start.Add(90*time.Minute), wellness.EnergyMedium, 4)
	require.NoError(t, err)
	second, err := wellness.NewStudySession(nil, start.Add(3*time.Hour), start.Add(4*time.Hour), wellness.EnergyHigh, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	total, err := repo.TotalMinutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, total)

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID(), sessions[0].ID())
	assert.Equal(t, 90, sessions[1].DurationMinutes())
	assert.Nil(t, sessions[1].TaskID())
}
