package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	productivityQueries "github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	schedulingQueries "github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	wellnessQueries "github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
)

const mimeJSON = "application/json"

// RegisterResources registers read-only views of tasks, today's plan,
// energy and recommendations.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	if deps.App == nil {
		return fmt.Errorf("app is required")
	}
	app := deps.App

	srv.Resource("tempo://tasks").
		Name("Tasks").
		Description("All tasks with their subtasks").
		MimeType(mimeJSON).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			tasks, err := app.ListTasksHandler.Handle(ctx, productivityQueries.ListTasksQuery{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("tempo://tasks/open").
		Name("Open tasks").
		Description("Tasks that are not completed").
		MimeType(mimeJSON).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			tasks, err := app.ListTasksHandler.Handle(ctx, productivityQueries.ListTasksQuery{})
			if err != nil {
				return nil, err
			}
			open := make([]productivityQueries.TaskDTO, 0, len(tasks))
			for _, t := range tasks {
				if t.Status != string(task.StatusCompleted) {
					open = append(open, t)
				}
			}
			return jsonResource(uri, open)
		})

	srv.Resource("tempo://schedule/today").
		Name("Today's plan").
		Description("The generated plan for today").
		MimeType(mimeJSON).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			plan, err := app.GenerateScheduleHandler.Handle(ctx, schedulingQueries.GenerateScheduleQuery{Date: app.Today()})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, plan)
		})

	srv.Resource("tempo://energy").
		Name("Energy patterns").
		Description("Energy observations per weekday and hour").
		MimeType(mimeJSON).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			histogram, err := app.GetEnergyHistogramHandler.Handle(ctx, wellnessQueries.GetEnergyHistogramQuery{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, histogram)
		})

	srv.Resource("tempo://recommendations").
		Name("Recommendations").
		Description("Current study recommendations").
		MimeType(mimeJSON).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			dto, err := app.GetRecommendationsHandler.Handle(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, dto)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: mimeJSON,
		Text:     string(data),
	}, nil
}
