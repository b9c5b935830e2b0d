package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers prompts for the common planning workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("plan_my_day").
		Description("Plan today around classes, sleep and energy, then pin what the generated plan missed.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Planning", `Help me plan my day. Please:

1. Read today's plan from the tempo://schedule/today resource
2. Read my open tasks from tempo://tasks/open
3. Check tempo://recommendations for urgent deadlines

Then:
- Point out open tasks with a due date in the next three days that are not on today's plan
- Suggest a time for each of them in a free hour, preferring high-energy hours for high-priority work
- Offer to pin them with the schedule.pin tool

Keep the answer short and list times as HH:MM.`), nil
		})

	srv.Prompt("energy_checkin").
		Description("Log how energetic I feel right now and see how it changes the plan.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			level := args["level"]
			if level == "" {
				level = "the level I tell you"
			}
			return userPrompt("Energy Check-in", fmt.Sprintf(`I want to record my energy. Please:

1. Log %s for the current hour with the energy.log tool
2. Read tempo://energy and tell me which hours of today usually have high energy
3. Regenerate today's plan with schedule.generate and summarise what moved`, level)), nil
		})

	srv.Prompt("weekly_review").
		Description("Review the week: finished work, study hours and what is due next.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Weekly Review", `Let's review my week. Please:

1. Get my numbers with the stats.get tool
2. Read tempo://tasks for everything still open
3. Read tempo://recommendations

Help me:
- Celebrate what got completed
- Spot tasks that are overdue or have no estimate
- Decide which subtasks to tackle first next week`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
