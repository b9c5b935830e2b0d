package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

// SleepCmd is the sleep schedule command group
var SleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Set or show the sleep schedule",
}

var (
	sleepHours    float64
	sleepOptimize bool
	sleepFlexible bool
)

var sleepSetCmd = &cobra.Command{
	Use:   "set [bedtime] [wake-time]",
	Short: "Save the sleep schedule",
	Long: `Save the sleep schedule, replacing the previous one. Hours between
bedtime and wake time are never scheduled.

Examples:
  tempo sleep set 23:00 07:00
  tempo sleep set 00:30 08:30 --hours 8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		sleep, err := app.SaveSleepScheduleHandler.Handle(cmd.Context(), commands.SaveSleepScheduleCommand{
			Bedtime:      args[0],
			WakeTime:     args[1],
			DesiredHours: sleepHours,
			Optimize:     sleepOptimize,
			Flexible:     sleepFlexible,
		})
		if err != nil {
			return fmt.Errorf("failed to save sleep schedule: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Sleep schedule saved: %s-%s\n", sleep.Bedtime, sleep.WakeTime)
		return nil
	},
}

var sleepShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the sleep schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		sleep, err := app.GetSleepScheduleHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load sleep schedule: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, sleep)
		}
		out := cmd.OutOrStdout()
		if sleep == nil {
			fmt.Fprintln(out, "No sleep schedule saved.")
			return nil
		}
		fmt.Fprintf(out, "Bedtime:   %s\n", sleep.Bedtime)
		fmt.Fprintf(out, "Wake time: %s\n", sleep.WakeTime)
		fmt.Fprintf(out, "Desired:   %.1fh\n", sleep.DesiredHours)
		return nil
	},
}

func init() {
	sleepSetCmd.Flags().Float64Var(&sleepHours, "hours", 8, "desired hours of sleep")
	sleepSetCmd.Flags().BoolVar(&sleepOptimize, "optimize", false, "stored preference: optimise sleep")
	sleepSetCmd.Flags().BoolVar(&sleepFlexible, "flexible", false, "stored preference: flexible bedtime")

	SleepCmd.AddCommand(sleepSetCmd)
	SleepCmd.AddCommand(sleepShowCmd)
}
