package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/databasetest"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/felixgeelhaar/tempo/internal/wellness/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnergyHistogramHandler(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewObservationRepository(databasetest.OpenSQLite(t))
	for _, level := range []wellness.EnergyLevel{wellness.EnergyLow, wellness.EnergyHigh, wellness.EnergyLow} {
		o, err := wellness.NewObservation(2, 15, level, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, o))
	}
	handler := NewGetEnergyHistogramHandler(repo)

	all, err := handler.Handle(ctx, GetEnergyHistogramQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Observations)
	require.Len(t, all.Days, 7)
	assert.Equal(t, "Sunday", all.Days[0].Name)
	assert.Equal(t, wellness.EnergyMedium, all.Days[0].Hours[15].Dominant)

	tuesday := 2
	one, err := handler.Handle(ctx, GetEnergyHistogramQuery{Weekday: &tuesday})
	require.NoError(t, err)
	require.Len(t, one.Days, 1)
	require.Len(t, one.Days[0].Hours, 24)
	bucket := one.Days[0].Hours[15]
	assert.Equal(t, 15, bucket.Hour)
	assert.Equal(t, wellness.LevelCounts{High: 1, Low: 2}, bucket.LevelCounts)
	assert.Equal(t, wellness.EnergyLow, bucket.Dominant)

	bad := 9
	_, err = handler.Handle(ctx, GetEnergyHistogramQuery{Weekday: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
