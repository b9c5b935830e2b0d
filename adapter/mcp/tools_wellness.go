package mcp

import (
	"context"
	"time"

	"github.com/felixgeelhaar/mcp-go"
	insightsQueries "github.com/felixgeelhaar/tempo/internal/insights/application/queries"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/commands"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
)

type energyLogInput struct {
	Level   string `json:"energy_level" jsonschema:"required"`
	Weekday *int   `json:"day_of_week,omitempty"`
	Hour    *int   `json:"hour,omitempty"`
}

type energyHistogramInput struct {
	Weekday *int `json:"day_of_week,omitempty"`
}

type sessionLogInput struct {
	TaskID             string `json:"task_id,omitempty"`
	StartTime          string `json:"start_time" jsonschema:"required"`
	EndTime            string `json:"end_time" jsonschema:"required"`
	EnergyLevel        string `json:"energy_level,omitempty"`
	ProductivityRating int    `json:"productivity_rating,omitempty"`
}

func registerWellnessTools(srv *mcp.Server, t toolset) {
	srv.Tool("energy.log").
		Description("Record an energy level for a weekday and hour, defaulting to now").
		Handler(t.logEnergy)

	srv.Tool("energy.histogram").
		Description("Counts of high, medium and low energy per weekday and hour").
		Handler(t.energyHistogram)

	srv.Tool("session.log").
		Description("Record a finished study session").
		Handler(t.logSession)

	srv.Tool("recommendations.get").
		Description("Advice on urgent deadlines, the next high-energy hour, long tasks and balance").
		Handler(t.recommendations)
}

func (t toolset) logEnergy(ctx context.Context, input energyLogInput) (map[string]any, error) {
	now := time.Now().In(t.app.Location)
	weekday, hour := int(now.Weekday()), now.Hour()
	if input.Weekday != nil {
		weekday = *input.Weekday
	}
	if input.Hour != nil {
		hour = *input.Hour
	}

	result, err := t.app.RecordEnergyHandler.Handle(ctx, commands.RecordEnergyCommand{
		Weekday: weekday,
		Hour:    hour,
		Level:   input.Level,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)

	return map[string]any{
		"id":           result.ObservationID,
		"day_of_week":  weekday,
		"hour":         hour,
		"energy_level": input.Level,
	}, nil
}

func (t toolset) energyHistogram(ctx context.Context, input energyHistogramInput) (*queries.EnergyHistogramDTO, error) {
	return t.app.GetEnergyHistogramHandler.Handle(ctx, queries.GetEnergyHistogramQuery{Weekday: input.Weekday})
}

// logSession records sessions without an energy level or rating as medium
// and 3.
func (t toolset) logSession(ctx context.Context, input sessionLogInput) (map[string]any, error) {
	taskID, err := parseOptionalUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	start, err := parseTimestamp(input.StartTime, t.app.Location)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp(input.EndTime, t.app.Location)
	if err != nil {
		return nil, err
	}

	if input.EnergyLevel == "" {
		input.EnergyLevel = "medium"
	}
	if input.ProductivityRating == 0 {
		input.ProductivityRating = 3
	}

	result, err := t.app.RecordStudySessionHandler.Handle(ctx, commands.RecordStudySessionCommand{
		TaskID:             taskID,
		Start:              start,
		End:                end,
		EnergyLevel:        input.EnergyLevel,
		ProductivityRating: input.ProductivityRating,
	})
	if err != nil {
		return nil, err
	}
	t.flush(ctx)

	return map[string]any{
		"id":               result.SessionID,
		"duration_minutes": result.DurationMinutes,
	}, nil
}

func (t toolset) recommendations(ctx context.Context, _ struct{}) (*insightsQueries.RecommendationsDTO, error) {
	return t.app.GetRecommendationsHandler.Handle(ctx)
}
