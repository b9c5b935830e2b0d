package wellness

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/tempo/adapter/cli/clitest"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyLogAndShow(t *testing.T) {
	app := clitest.Setup(t)

	require.NoError(t, energyLogCmd.Flags().Set("day", "2"))
	require.NoError(t, energyLogCmd.Flags().Set("hour", "14"))

	out, err := clitest.Run(t, energyLogCmd, "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded high energy for Tuesday 14:00")

	dto, err := app.GetEnergyHistogramHandler.Handle(context.Background(), queries.GetEnergyHistogramQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Observations)

	out, err = clitest.Run(t, energyShowCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Energy observations: 1")
	assert.Contains(t, out, "Tuesday    ..............H.........")
}

func TestEnergyLog_RejectsUnknownLevel(t *testing.T) {
	clitest.Setup(t)

	_, err := clitest.Run(t, energyLogCmd, "sleepy")
	assert.Error(t, err)
}

func TestSessionLog(t *testing.T) {
	app := clitest.Setup(t)

	sessionStart = "2026-10-19 14:00"
	sessionEnd = "2026-10-19 15:30"
	sessionEnergy = "high"
	sessionRating = 4
	sessionTask = ""

	out, err := clitest.Run(t, sessionLogCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "(90 minutes)")

	stats, err := app.GetStatsHandler.Handle(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.5, stats.TotalStudyHours, 0.001)

	dto, err := app.GetEnergyHistogramHandler.Handle(context.Background(), queries.GetEnergyHistogramQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Observations)
}

func TestSessionLog_BadTimestamp(t *testing.T) {
	clitest.Setup(t)

	sessionStart = "yesterday"
	sessionEnd = "2026-10-19 15:30"

	_, err := clitest.Run(t, sessionLogCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --start")
}
