package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	updateTitle     string
	updateStatus    string
	updatePriority  string
	updateCategory  string
	updateDue       string
	updateEstimate  float64
	updateCompleted float64
	updateEnergy    string
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the fields given as flags; everything else is left as is.

Examples:
  tempo task update 3f2a... --status in_progress
  tempo task update 3f2a... --due ""          # clear the due date
  tempo task update 3f2a... --completed-hours 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		update := commands.UpdateTaskCommand{TaskID: id}
		flags := cmd.Flags()
		if flags.Changed("title") {
			update.Title = &updateTitle
		}
		if flags.Changed("status") {
			update.Status = &updateStatus
		}
		if flags.Changed("priority") {
			update.Priority = &updatePriority
		}
		if flags.Changed("category") {
			update.Category = &updateCategory
		}
		if flags.Changed("energy") {
			update.EnergyLevel = &updateEnergy
		}
		if flags.Changed("estimate") {
			update.EstimatedHours = &updateEstimate
		}
		if flags.Changed("completed-hours") {
			update.CompletedHours = &updateCompleted
		}
		if flags.Changed("due") {
			if updateDue == "" {
				update.ClearDueDate = true
			} else {
				due, err := schedulingDomain.ParseDate(updateDue)
				if err != nil {
					return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
				}
				update.DueDate = &due
			}
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), update); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", id)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "status (pending, in_progress, completed)")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "category (assignment, exam, activity, other)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "due date (YYYY-MM-DD), empty to clear")
	updateCmd.Flags().Float64VarP(&updateEstimate, "estimate", "e", 0, "estimated hours")
	updateCmd.Flags().Float64Var(&updateCompleted, "completed-hours", 0, "hours already spent")
	updateCmd.Flags().StringVar(&updateEnergy, "energy", "", "energy the task needs, empty to clear")
}
