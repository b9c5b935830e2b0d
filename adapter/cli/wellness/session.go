package wellness

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// SessionCmd is the study session command group
var SessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record study sessions",
}

var (
	sessionTask   string
	sessionStart  string
	sessionEnd    string
	sessionEnergy string
	sessionRating int
)

const sessionLayout = "2006-01-02 15:04"

var sessionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a finished study session",
	Long: `Record a finished study session. The energy level is also logged for
the weekday and hour the session started.

Examples:
  tempo session log --start "2026-10-19 14:00" --end "2026-10-19 15:30" --energy high --rating 4
  tempo session log --task 3f2a... --start "2026-10-19 20:00" --end "2026-10-19 21:00" --energy low`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		start, err := time.ParseInLocation(sessionLayout, sessionStart, app.Location)
		if err != nil {
			return fmt.Errorf("invalid --start (use \"YYYY-MM-DD HH:MM\"): %w", err)
		}
		end, err := time.ParseInLocation(sessionLayout, sessionEnd, app.Location)
		if err != nil {
			return fmt.Errorf("invalid --end (use \"YYYY-MM-DD HH:MM\"): %w", err)
		}

		record := commands.RecordStudySessionCommand{
			Start:              start,
			End:                end,
			EnergyLevel:        sessionEnergy,
			ProductivityRating: sessionRating,
		}
		if sessionTask != "" {
			id, err := uuid.Parse(sessionTask)
			if err != nil {
				return fmt.Errorf("invalid --task: %w", err)
			}
			record.TaskID = &id
		}

		result, err := app.RecordStudySessionHandler.Handle(cmd.Context(), record)
		if err != nil {
			return fmt.Errorf("failed to record session: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Study session recorded: %s (%d minutes)\n", result.SessionID, result.DurationMinutes)
		return nil
	},
}

func init() {
	sessionLogCmd.Flags().StringVar(&sessionTask, "task", "", "task the session was spent on")
	sessionLogCmd.Flags().StringVar(&sessionStart, "start", "", "start time (YYYY-MM-DD HH:MM)")
	sessionLogCmd.Flags().StringVar(&sessionEnd, "end", "", "end time (YYYY-MM-DD HH:MM)")
	sessionLogCmd.Flags().StringVar(&sessionEnergy, "energy", "medium", "energy level during the session")
	sessionLogCmd.Flags().IntVar(&sessionRating, "rating", 3, "productivity rating, 1 to 5")
	_ = sessionLogCmd.MarkFlagRequired("start")
	_ = sessionLogCmd.MarkFlagRequired("end")

	SessionCmd.AddCommand(sessionLogCmd)
}
