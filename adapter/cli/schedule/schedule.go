package schedule

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/app"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan a day",
	Long: `Generate the plan of a day, pin tasks to fixed times and export the
result as an ICS calendar.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(pinCmd)
	Cmd.AddCommand(unpinCmd)
	Cmd.AddCommand(pinnedCmd)
	Cmd.AddCommand(exportCmd)
}

// resolveDate parses YYYY-MM-DD, "today" or "tomorrow"; empty means today.
func resolveDate(c *app.Container, raw string) (time.Time, error) {
	today := c.Today()
	switch raw {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	return schedulingDomain.ParseDate(raw)
}
