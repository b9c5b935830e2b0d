package schedule

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	generateDate string
	showSlots    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the plan of a day",
	Long: `Generate the plan of a day: free hours outside sleep and recurring
events are filled with open tasks, most pressing first, preferring hours
whose usual energy matches what the task needs.

Examples:
  tempo schedule generate
  tempo schedule generate --date tomorrow --slots
  tempo schedule generate --date 2026-10-23 --json`,
	Aliases: []string{"show"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		date, err := resolveDate(app, generateDate)
		if err != nil {
			return err
		}

		dto, err := app.GenerateScheduleHandler.Handle(cmd.Context(), queries.GenerateScheduleQuery{Date: date})
		if err != nil {
			return fmt.Errorf("failed to generate schedule: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, dto)
		}
		printSchedule(cmd.OutOrStdout(), dto, showSlots)
		return nil
	},
}

func printSchedule(w io.Writer, dto *queries.ScheduleDTO, slots bool) {
	fmt.Fprintf(w, "Schedule for %s, %s\n", dto.Weekday, dto.Date)
	fmt.Fprintln(w)

	if len(dto.Timeline) == 0 {
		fmt.Fprintln(w, "Nothing planned.")
	}
	for _, e := range dto.Timeline {
		line := fmt.Sprintf("  %s-%s  %-8s %s", e.Start, e.End, e.Kind, e.Title)
		if e.Energy != "" {
			line += fmt.Sprintf(" [%s]", e.Energy)
		}
		if e.Meta != "" {
			line += " - " + e.Meta
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d task(s) scheduled, %d hour(s)", dto.TotalAssignedTasks, dto.TotalAssignedHours)
	if len(dto.Pinned) > 0 {
		fmt.Fprintf(w, ", %d pinned", len(dto.Pinned))
	}
	fmt.Fprintln(w)

	if slots {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Free hours (%d):\n", len(dto.FreeSlots))
		for _, s := range dto.FreeSlots {
			fmt.Fprintf(w, "  %s  %s\n", s.Time, s.EnergyLevel)
		}
	}
}

func init() {
	generateCmd.Flags().StringVarP(&generateDate, "date", "d", "", "date to plan (YYYY-MM-DD, today, tomorrow)")
	generateCmd.Flags().BoolVar(&showSlots, "slots", false, "also list the free hours")
}
