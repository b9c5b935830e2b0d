package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	category    string
	priority    string
	description string
	dueDate     string
	estimate    float64
	energy      string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties.

Tasks estimated at more than four hours are broken down into subtasks.

Examples:
  tempo task create "Read chapter 4"
  tempo task create "Lab report" -p high --due 2026-10-23 -e 3
  tempo task create "Thesis draft" --category assignment --estimate 12 --energy high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			Title:       args[0],
			Description: description,
			Category:    category,
			Priority:    priority,
			EnergyLevel: energy,
		}
		if dueDate != "" {
			parsed, err := schedulingDomain.ParseDate(dueDate)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			createCmd.DueDate = &parsed
		}
		if cmd.Flags().Changed("estimate") {
			hours := estimate
			createCmd.EstimatedHours = &hours
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		cli.Flush(cmd)

		if cli.JSON() {
			return cli.PrintJSON(cmd, map[string]any{"id": result.TaskID, "subtasks": result.Subtasks})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %s\n", result.TaskID)
		fmt.Fprintf(out, "  title: %s\n", args[0])
		if result.Subtasks > 0 {
			fmt.Fprintf(out, "  broken down into %d subtasks\n", result.Subtasks)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&category, "category", "", "task category (assignment, exam, activity, other)")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high)")
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().Float64VarP(&estimate, "estimate", "e", 0, "estimated hours")
	createCmd.Flags().StringVar(&energy, "energy", "", "energy the task needs (low, medium, high)")
}
