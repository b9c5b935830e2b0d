package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	"github.com/felixgeelhaar/tempo/internal/calendar/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// EventCmd is the recurring event command group
var EventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage recurring events",
	Long: `Recurring events such as lectures, work shifts or training block
hours of the day so no task is scheduled over them.`,
}

var (
	eventDescription string
	eventCategory    string
	eventStart       string
	eventEnd         string
	eventPattern     string
	eventDays        string
	eventFrom        string
	eventUntil       string
	listDay          int
)

var eventAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a recurring event",
	Long: `Add a recurring event.

Examples:
  tempo event add "Linear Algebra" --category class --start 09:00 --end 10:30 --days 1,3
  tempo event add "Gym" --category activity --start 18:00 --end 19:00 --pattern daily`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		input, err := eventInput(args[0])
		if err != nil {
			return err
		}

		result, err := app.CreateRecurringEventHandler.Handle(cmd.Context(), commands.CreateRecurringEventCommand{
			RecurringEventInput: input,
		})
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Event added: %s\n", result.EventID)
		return nil
	},
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update [event-id] [name]",
	Short: "Replace a recurring event",
	Long: `Replace every field of a recurring event with the given values.

Examples:
  tempo event update 5b1c... "Linear Algebra" --category class --start 10:00 --end 11:30 --days 1,3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		input, err := eventInput(args[1])
		if err != nil {
			return err
		}

		if err := app.UpdateRecurringEventHandler.Handle(cmd.Context(), commands.UpdateRecurringEventCommand{
			EventID:             id,
			RecurringEventInput: input,
		}); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Event updated: %s\n", id)
		return nil
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete [event-id]",
	Short:   "Delete a recurring event",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		if err := app.DeleteRecurringEventHandler.Handle(cmd.Context(), commands.DeleteRecurringEventCommand{EventID: id}); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		cli.Flush(cmd)

		fmt.Fprintf(cmd.OutOrStdout(), "Event deleted: %s\n", id)
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recurring events",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var query queries.ListRecurringEventsQuery
		if cmd.Flags().Changed("day") {
			query.Weekday = &listDay
		}
		events, err := app.ListRecurringEventsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if cli.JSON() {
			return cli.PrintJSON(cmd, events)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No recurring events.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%s-%s  %s (%s, %s)\n", e.StartTime, e.EndTime, e.Name, e.Category, describeRecurrence(e))
			fmt.Fprintf(out, "   ID: %s\n", e.ID)
		}
		return nil
	},
}

func describeRecurrence(e queries.RecurringEventDTO) string {
	if len(e.Weekdays) == 0 {
		return e.Pattern
	}
	names := make([]string, 0, len(e.Weekdays))
	for _, d := range e.Weekdays {
		names = append(names, weekdayNames[d%7])
	}
	return e.Pattern + " on " + strings.Join(names, ",")
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func eventInput(name string) (commands.RecurringEventInput, error) {
	days, err := parseDays(eventDays)
	if err != nil {
		return commands.RecurringEventInput{}, err
	}
	return commands.RecurringEventInput{
		Name:        name,
		Description: eventDescription,
		Category:    eventCategory,
		StartTime:   eventStart,
		EndTime:     eventEnd,
		Pattern:     eventPattern,
		Weekdays:    days,
		ValidFrom:   eventFrom,
		ValidUntil:  eventUntil,
	}, nil
}

// parseDays reads a comma list of weekday numbers, 0 (Sunday) to 6.
func parseDays(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --days entry %q: %w", p, err)
		}
		days = append(days, d)
	}
	return days, nil
}

func init() {
	for _, c := range []*cobra.Command{eventAddCmd, eventUpdateCmd} {
		c.Flags().StringVar(&eventDescription, "description", "", "description")
		c.Flags().StringVar(&eventCategory, "category", "other", "category (class, work, activity, other)")
		c.Flags().StringVar(&eventStart, "start", "", "start time (HH:MM)")
		c.Flags().StringVar(&eventEnd, "end", "", "end time (HH:MM)")
		c.Flags().StringVar(&eventPattern, "pattern", "weekly", "recurrence (daily, weekly)")
		c.Flags().StringVar(&eventDays, "days", "", "weekdays for weekly events, e.g. 1,3 for Monday and Wednesday")
		c.Flags().StringVar(&eventFrom, "from", "", "first date (YYYY-MM-DD)")
		c.Flags().StringVar(&eventUntil, "until", "", "last date (YYYY-MM-DD)")
		_ = c.MarkFlagRequired("start")
		_ = c.MarkFlagRequired("end")
	}
	eventListCmd.Flags().IntVar(&listDay, "day", 0, "only events on this weekday, 0 (Sunday) to 6")

	EventCmd.AddCommand(eventAddCmd)
	EventCmd.AddCommand(eventListCmd)
	EventCmd.AddCommand(eventUpdateCmd)
	EventCmd.AddCommand(eventDeleteCmd)
}
