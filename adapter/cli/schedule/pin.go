package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	pinDate   string
	pinStart  string
	pinEnd    string
	pinEnergy string
)

var pinCmd = &cobra.Command{
	Use:   "pin [task-id]",
	Short: "Pin a task to a time on a date",
	Long: `Pin a task to a fixed time. Pinning the same task on the same date
again replaces the earlier pin. Pinned tasks are left out of automatic
placement for that date.

Examples:
  tempo schedule pin 3f2a... --start 19:00 --end 20:30
  tempo schedule pin 3f2a... --date 2026-10-23 --start 08:00 --end 09:00 --energy high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", args[0], err)
		}
		date, err := resolveDate(app, pinDate)
		if err != nil {
			return err
		}

		result, err := app.PinAssignmentHandler.Handle(cmd.Context(), commands.PinAssignmentCommand{
			TaskID:      taskID,
			Date:        date,
			StartTime:   pinStart,
			EndTime:     pinEnd,
			EnergyLevel: pinEnergy,
		})
		if err != nil {
			return fmt.Errorf("failed to pin task: %w", err)
		}
		cli.Flush(cmd)

		dto := queries.ToAssignmentDTO(result.Assignment)
		if cli.JSON() {
			return cli.PrintJSON(cmd, dto)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Pinned %q on %s %s-%s (%s)\n", dto.Title, dto.Date, dto.StartTime, dto.EndTime, dto.ID)
		if result.Replaced > 0 {
			fmt.Fprintf(out, "  replaced %d earlier pin(s)\n", result.Replaced)
		}
		return nil
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin [assignment-id]",
	Short: "Remove a pinned task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		if err := app.UnpinAssignmentHandler.Handle(cmd.Context(), commands.UnpinAssignmentCommand{AssignmentID: id}); err != nil {
			return fmt.Errorf("failed to unpin: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s\n", id)
		return nil
	},
}

var pinnedDate string

var pinnedCmd = &cobra.Command{
	Use:   "pinned",
	Short: "List the pinned tasks of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		date, err := resolveDate(app, pinnedDate)
		if err != nil {
			return err
		}

		pinned, err := app.ListPinnedHandler.Handle(cmd.Context(), queries.ListPinnedQuery{Date: date})
		if err != nil {
			return fmt.Errorf("failed to list pinned tasks: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, pinned)
		}
		out := cmd.OutOrStdout()
		if len(pinned) == 0 {
			fmt.Fprintln(out, "No pinned tasks.")
			return nil
		}
		for _, p := range pinned {
			fmt.Fprintf(out, "  %s-%s  %s (%s)\n", p.StartTime, p.EndTime, p.Title, p.ID)
		}
		return nil
	},
}

func init() {
	pinCmd.Flags().StringVarP(&pinDate, "date", "d", "", "date (YYYY-MM-DD, today, tomorrow)")
	pinCmd.Flags().StringVar(&pinStart, "start", "", "start time (HH:MM)")
	pinCmd.Flags().StringVar(&pinEnd, "end", "", "end time (HH:MM)")
	pinCmd.Flags().StringVar(&pinEnergy, "energy", "", "energy level expected at that time")
	_ = pinCmd.MarkFlagRequired("start")
	_ = pinCmd.MarkFlagRequired("end")

	pinnedCmd.Flags().StringVarP(&pinnedDate, "date", "d", "", "date (YYYY-MM-DD, today, tomorrow)")
}
