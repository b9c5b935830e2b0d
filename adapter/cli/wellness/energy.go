package wellness

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/commands"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
	"github.com/spf13/cobra"
)

// EnergyCmd is the energy command group
var EnergyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Log and inspect energy levels",
	Long: `Record how energetic you feel at a given weekday and hour. The
scheduler places demanding work in the hours where high energy is most
often recorded.`,
}

var (
	logDay  int
	logHour int
	showDay int
)

var energyLogCmd = &cobra.Command{
	Use:   "log [low|medium|high]",
	Short: "Record an energy observation",
	Long: `Record an energy observation. Without --day and --hour the current
weekday and hour are used.

Examples:
  tempo energy log high
  tempo energy log low --day 1 --hour 15   # Monday 15:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		now := time.Now().In(app.Location)
		day, hour := int(now.Weekday()), now.Hour()
		if cmd.Flags().Changed("day") {
			day = logDay
		}
		if cmd.Flags().Changed("hour") {
			hour = logHour
		}

		result, err := app.RecordEnergyHandler.Handle(cmd.Context(), commands.RecordEnergyCommand{
			Weekday: day,
			Hour:    hour,
			Level:   args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to record energy: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s energy for %s %02d:00 (%s)\n",
			strings.ToLower(args[0]), time.Weekday(day), hour, result.ObservationID)
		return nil
	},
}

var energyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the energy histogram",
	Long: `Show the dominant energy level per weekday and hour.

Examples:
  tempo energy show
  tempo energy show --day 2 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var query queries.GetEnergyHistogramQuery
		if cmd.Flags().Changed("day") {
			query.Weekday = &showDay
		}
		dto, err := app.GetEnergyHistogramHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to load energy histogram: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, dto)
		}
		printHistogram(cmd.OutOrStdout(), dto)
		return nil
	},
}

// printHistogram renders one row per weekday with a letter per hour:
// H, M, L for the dominant level and "." where nothing was recorded.
func printHistogram(w io.Writer, dto *queries.EnergyHistogramDTO) {
	fmt.Fprintf(w, "Energy observations: %d\n", dto.Observations)
	fmt.Fprintln(w, "           000000000011111111112222")
	fmt.Fprintln(w, "           012345678901234567890123")
	for _, day := range dto.Days {
		var row strings.Builder
		for _, h := range day.Hours {
			if h.Total() == 0 {
				row.WriteByte('.')
				continue
			}
			row.WriteByte(strings.ToUpper(string(h.Dominant))[0])
		}
		fmt.Fprintf(w, "%-10s %s\n", day.Name, row.String())
	}
}

func init() {
	energyLogCmd.Flags().IntVar(&logDay, "day", 0, "weekday, 0 (Sunday) to 6 (Saturday)")
	energyLogCmd.Flags().IntVar(&logHour, "hour", 0, "hour of day, 0 to 23")
	energyShowCmd.Flags().IntVar(&showDay, "day", 0, "only this weekday, 0 (Sunday) to 6 (Saturday)")

	EnergyCmd.AddCommand(energyLogCmd)
	EnergyCmd.AddCommand(energyShowCmd)
}
