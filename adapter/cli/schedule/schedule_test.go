package schedule

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/adapter/cli/clitest"
	"github.com/felixgeelhaar/tempo/internal/app"
	calendarCommands "github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	generateDate = ""
	showSlots = false
	pinDate = ""
	pinStart = ""
	pinEnd = ""
	pinEnergy = ""
	pinnedDate = ""
	exportDate = ""
	exportOut = ""
	sleepHours = 8
	sleepOptimize = false
	sleepFlexible = false
}

func seed(t *testing.T, c *app.Container) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	_, err := clitest.Run(t, sleepSetCmd, "23:00", "07:00")
	require.NoError(t, err)

	_, err = c.CreateRecurringEventHandler.Handle(ctx, calendarCommands.CreateRecurringEventCommand{
		RecurringEventInput: calendarCommands.RecurringEventInput{
			Name:      "Lecture",
			Category:  "class",
			StartTime: "09:00",
			EndTime:   "12:00",
			Pattern:   "daily",
		},
	})
	require.NoError(t, err)

	due := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	hours := 2.0
	result, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:          "Problem set",
		Priority:       "high",
		DueDate:        &due,
		EstimatedHours: &hours,
	})
	require.NoError(t, err)
	return result.TaskID
}

func TestGenerate(t *testing.T) {
	c := clitest.Setup(t)
	resetFlags()
	seed(t, c)

	generateDate = "2030-01-08"
	showSlots = true
	out, err := clitest.Run(t, generateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule for Tuesday, 2030-01-08")
	assert.Contains(t, out, "09:00-12:00  recurring_event Lecture")
	assert.Contains(t, out, "Problem set")
	assert.Contains(t, out, "1 task(s) scheduled")
	assert.Contains(t, out, "Free hours (")
}

func TestGenerate_JSON(t *testing.T) {
	c := clitest.Setup(t)
	resetFlags()
	seed(t, c)

	cli.SetJSON(true)
	generateDate = "2030-01-08"
	out, err := clitest.Run(t, generateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"total_scheduled_tasks": 1`)
	assert.Contains(t, out, `"day_of_week": "Tuesday"`)
}

func TestGenerate_InvalidDate(t *testing.T) {
	clitest.Setup(t)
	resetFlags()

	generateDate = "next week"
	_, err := clitest.Run(t, generateCmd)
	assert.Error(t, err)
}

func TestPinUnpin(t *testing.T) {
	c := clitest.Setup(t)
	resetFlags()
	taskID := seed(t, c)

	pinDate = "2030-01-08"
	pinStart = "19:00"
	pinEnd = "21:00"
	out, err := clitest.Run(t, pinCmd, taskID.String())
	require.NoError(t, err)
	assert.Contains(t, out, `Pinned "Problem set" on 2030-01-08 19:00-21:00`)

	out, err = clitest.Run(t, pinCmd, taskID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "replaced 1 earlier pin(s)")

	pinnedDate = "2030-01-08"
	out, err = clitest.Run(t, pinnedCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "19:00-21:00  Problem set")

	generateDate = "2030-01-08"
	out, err = clitest.Run(t, generateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "0 task(s) scheduled, 0 hour(s), 1 pinned")

	pinned, err := c.ListPinnedHandler.Handle(context.Background(), queries.ListPinnedQuery{Date: time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, pinned, 1)

	_, err = clitest.Run(t, unpinCmd, pinned[0].ID.String())
	require.NoError(t, err)

	out, err = clitest.Run(t, pinnedCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No pinned tasks.")

	_, err = clitest.Run(t, unpinCmd, pinned[0].ID.String())
	assert.Error(t, err)
}

func TestPin_Invalid(t *testing.T) {
	c := clitest.Setup(t)
	resetFlags()
	taskID := seed(t, c)

	_, err := clitest.Run(t, pinCmd, "not-a-uuid")
	assert.Error(t, err)

	pinStart = "21:00"
	pinEnd = "19:00"
	_, err = clitest.Run(t, pinCmd, taskID.String())
	assert.Error(t, err)

	pinStart = "19:00"
	pinEnd = "20:00"
	_, err = clitest.Run(t, pinCmd, uuid.NewString())
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	c := clitest.Setup(t)
	resetFlags()
	seed(t, c)

	exportDate = "2030-01-08"
	out, err := clitest.Run(t, exportCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Problem set")

	path := filepath.Join(t.TempDir(), "plans", "day.ics")
	exportOut = path
	_, err = clitest.Run(t, exportCmd)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VEVENT")
}

func TestSleep(t *testing.T) {
	clitest.Setup(t)
	resetFlags()

	out, err := clitest.Run(t, sleepShowCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No sleep schedule saved.")

	sleepHours = 7.5
	out, err = clitest.Run(t, sleepSetCmd, "00:30", "08:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Sleep schedule saved: 00:30-08:00")

	out, err = clitest.Run(t, sleepShowCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Bedtime:   00:30")
	assert.Contains(t, out, "Desired:   7.5h")

	_, err = clitest.Run(t, sleepSetCmd, "25:00", "07:00")
	assert.Error(t, err)
}

func TestResolveDate(t *testing.T) {
	c := clitest.Setup(t)
	today := c.Today()

	d, err := resolveDate(c, "")
	require.NoError(t, err)
	assert.Equal(t, today, d)

	d, err = resolveDate(c, "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, today.AddDate(0, 0, 1), d)

	d, err = resolveDate(c, "2026-10-23")
	require.NoError(t, err)
	assert.Equal(t, 23, d.Day())
}
