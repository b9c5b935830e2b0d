package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, update and delete tasks and their subtasks.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(subtaskCmd)
	Cmd.AddCommand(statsCmd)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

func printTask(w io.Writer, t queries.TaskDTO) {
	marker := ""
	if t.Overdue {
		marker = " [OVERDUE]"
	}
	fmt.Fprintf(w, "%s %s %s%s\n", statusIcon(t.Status), t.Title, priorityBadge(t.Priority), marker)
	fmt.Fprintf(w, "   ID: %s  (%s)\n", t.ID, t.Category)
	if t.DueDate != nil {
		fmt.Fprintf(w, "   Due: %s\n", t.DueDate.Format(schedulingDomain.DateLayout))
	}
	if t.EstimatedHours != nil {
		fmt.Fprintf(w, "   Estimate: %.1fh (%.1fh done)\n", *t.EstimatedHours, t.CompletedHours)
	}
	if t.EnergyLevel != "" {
		fmt.Fprintf(w, "   Energy: %s\n", t.EnergyLevel)
	}
}

func printSubtasks(w io.Writer, subtasks []queries.SubtaskDTO) {
	if len(subtasks) == 0 {
		return
	}
	fmt.Fprintln(w, "   Subtasks:")
	for _, s := range subtasks {
		fmt.Fprintf(w, "     %s %d. %s (%s)\n", statusIcon(s.Status), s.Order+1, s.Title, s.ID)
	}
}

func statusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "in_progress":
		return "[>]"
	default:
		return "[ ]"
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
