package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/security"
	"github.com/spf13/cobra"
)

var (
	exportDate string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan of a day as ICS",
	Long: `Export the generated and pinned tasks of a day as an ICS calendar,
one event per task.

Examples:
  tempo schedule export > today.ics
  tempo schedule export --date tomorrow --out ~/Calendars/tomorrow.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		date, err := resolveDate(app, exportDate)
		if err != nil {
			return err
		}

		data, err := app.ExportScheduleHandler.Handle(cmd.Context(), queries.ExportScheduleQuery{Date: date})
		if err != nil {
			return fmt.Errorf("failed to export schedule: %w", err)
		}

		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		path, err := security.WriteFile(exportOut, data)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Schedule written to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDate, "date", "d", "", "date (YYYY-MM-DD, today, tomorrow)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to this file instead of stdout")
}
