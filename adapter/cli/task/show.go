package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: id})
		if err != nil {
			return err
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, t)
		}
		out := cmd.OutOrStdout()
		printTask(out, *t)
		if t.Description != "" {
			fmt.Fprintf(out, "   %s\n", t.Description)
		}
		printSubtasks(out, t.Subtasks)
		return nil
	},
}
