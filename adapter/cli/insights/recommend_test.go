package insights

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/adapter/cli/clitest"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	app := clitest.Setup(t)

	due := time.Now().UTC().AddDate(0, 0, 1)
	hours := 5.0
	_, err := app.CreateTaskHandler.Handle(context.Background(), commands.CreateTaskCommand{
		Title:          "Thesis chapter",
		Category:       "assignment",
		Priority:       "high",
		DueDate:        &due,
		EstimatedHours: &hours,
	})
	require.NoError(t, err)

	out, err := clitest.Run(t, Cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "[!] Urgent Deadlines Approaching")
	assert.Contains(t, out, "[~] Long Tasks Detected")
	assert.Contains(t, out, "  - Thesis chapter (due ")
	assert.Contains(t, out, "Open tasks: assignment 1")
}

func TestRecommend_Empty(t *testing.T) {
	clitest.Setup(t)

	out, err := clitest.Run(t, Cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "[=] Task Distribution")
	assert.NotContains(t, out, "Urgent")
}

func TestRecommend_JSON(t *testing.T) {
	clitest.Setup(t)
	cli.SetJSON(true)

	out, err := clitest.Run(t, Cmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"recommendations"`)
	assert.Contains(t, out, `"cached": false`)
}
