package insights

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/insights/domain"
	"github.com/spf13/cobra"
)

// Cmd prints study recommendations.
var Cmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"recommendations", "tips"},
	Short:   "Show study recommendations",
	Long: `Show advice derived from open tasks and recorded energy: deadlines
coming up, the next high-energy hour, long tasks worth splitting with
breaks, and how open work is spread across categories.

Results are cached for the current hour and refreshed when tasks or
energy records change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		dto, err := app.GetRecommendationsHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get recommendations: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, dto)
		}

		out := cmd.OutOrStdout()
		for i, a := range dto.Advisories {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printAdvisory(out, a)
		}
		return nil
	},
}

func printAdvisory(w io.Writer, a domain.Advisory) {
	fmt.Fprintf(w, "%s %s\n", icon(a.Type), a.Title)
	fmt.Fprintf(w, "  %s\n", a.Suggestion)

	if a.Time != nil {
		fmt.Fprintf(w, "  When: %s\n", a.Time.Description)
	}
	for _, t := range a.Tasks {
		printRef(w, t)
	}
	for _, t := range a.RecommendedTasks {
		printRef(w, t)
	}
	if len(a.Distribution) > 0 {
		categories := make([]string, 0, len(a.Distribution))
		for c := range a.Distribution {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		parts := make([]string, 0, len(categories))
		for _, c := range categories {
			parts = append(parts, fmt.Sprintf("%s %d", c, a.Distribution[c]))
		}
		fmt.Fprintf(w, "  Open tasks: %s\n", strings.Join(parts, ", "))
	}
}

func printRef(w io.Writer, t domain.TaskRef) {
	line := "  - " + t.Title
	if t.DueDate != nil {
		line += " (due " + t.DueDate.Format("Mon Jan 2") + ")"
	}
	if t.EstimatedHours != nil {
		line += fmt.Sprintf(" ~%.1fh", *t.EstimatedHours)
	}
	fmt.Fprintln(w, line)
}

func icon(t domain.AdvisoryType) string {
	switch t {
	case domain.AdvisoryUrgent:
		return "[!]"
	case domain.AdvisoryOptimalTime:
		return "[*]"
	case domain.AdvisoryBreak:
		return "[~]"
	default:
		return "[=]"
	}
}
