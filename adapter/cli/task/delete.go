package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Short:   "Delete a task and its subtasks",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{TaskID: id}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", id)
		return nil
	},
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask [subtask-id] [status]",
	Short: "Set the status of a subtask",
	Long: `Set the status of a subtask.

Examples:
  tempo task subtask 9c1d... completed`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.UpdateSubtaskStatusHandler.Handle(cmd.Context(), commands.UpdateSubtaskStatusCommand{
			SubtaskID: id,
			Status:    args[1],
		}); err != nil {
			return fmt.Errorf("failed to update subtask: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Subtask %s is now %s\n", id, args[1])
		return nil
	},
}
