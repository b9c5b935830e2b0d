package calendar

import (
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/security"
	"github.com/spf13/cobra"
)

// Cmd is the calendar command group
var Cmd = &cobra.Command{
	Use:   "calendar",
	Short: "Import recurring events from a calendar export",
}

var (
	importFile   string
	importURL    string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import events from an ICS export",
	Long: `Import events from an exported calendar (.ics). Every VEVENT with a
title and a start time becomes a recurring event; recurring VEVENTs keep
their weekdays, one-off events become daily events.

Read the export from a file, from a published URL, or from stdin with "-".

Examples:
  tempo calendar import --file timetable.ics
  tempo calendar import --url https://example.edu/timetable.ics --dry-run
  cat timetable.ics | tempo calendar import --file -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		importCmd := commands.ImportCalendarCommand{URL: importURL, DryRun: importDryRun}
		switch {
		case importFile != "" && importURL != "":
			return errors.New("use either --file or --url")
		case importFile == "-":
			data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), security.MaxImportBytes))
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			importCmd.Text = string(data)
		case importFile != "":
			data, err := security.ReadFileLimited(importFile, security.MaxImportBytes)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", importFile, err)
			}
			importCmd.Text = string(data)
		case importURL == "":
			return errors.New("one of --file or --url is required")
		}

		result, err := app.ImportCalendarHandler.Handle(cmd.Context(), importCmd)
		if err != nil {
			return fmt.Errorf("failed to import calendar: %w", err)
		}
		cli.Flush(cmd)

		if cli.JSON() {
			return cli.PrintJSON(cmd, result)
		}
		out := cmd.OutOrStdout()
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		fmt.Fprintf(out, "%s %d of %d calendar entries (%d recognised)\n",
			verb, len(result.Imported), result.Blocks, result.Parsed)
		for _, s := range result.Skipped {
			fmt.Fprintf(out, "  skipped %q: %s\n", s.Name, s.Reason)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to an .ics export, or - for stdin")
	importCmd.Flags().StringVar(&importURL, "url", "", "URL of a published .ics export")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and report without saving")

	Cmd.AddCommand(importCmd)
}
