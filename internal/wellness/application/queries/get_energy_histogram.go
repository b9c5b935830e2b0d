package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/wellness/domain"
)

// HourDTO is one bucket of the histogram.
type HourDTO struct {
	Hour int `json:"hour"`
	domain.LevelCounts
	Dominant domain.EnergyLevel `json:"dominant"`
}

// DayDTO is the 24-hour distribution of one weekday.
type DayDTO struct {
	Weekday int       `json:"day_of_week"`
	Name    string    `json:"day_name"`
	Hours   []HourDTO `json:"hours"`
}

// EnergyHistogramDTO is the aggregated energy log.
type EnergyHistogramDTO struct {
	Observations int      `json:"observations"`
	Days         []DayDTO `json:"days"`
}

// GetEnergyHistogramQuery restricts the result to one weekday when set.
type GetEnergyHistogramQuery struct {
	Weekday *int
}

// GetEnergyHistogramHandler rebuilds the histogram from the full log.
type GetEnergyHistogramHandler struct {
	observationRepo domain.ObservationRepository
}

// NewGetEnergyHistogramHandler creates a new GetEnergyHistogramHandler.
func NewGetEnergyHistogramHandler(observationRepo domain.ObservationRepository) *GetEnergyHistogramHandler {
	return &GetEnergyHistogramHandler{observationRepo: observationRepo}
}

// Histogram loads the observation log and aggregates it. Schedule and
// recommendation builders use this directly.
func (h *GetEnergyHistogramHandler) Histogram(ctx context.Context) (*domain.Histogram, error) {
	observations, err := h.observationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewHistogram(observations), nil
}

// Handle executes the GetEnergyHistogramQuery.
func (h *GetEnergyHistogramHandler) Handle(ctx context.Context, query GetEnergyHistogramQuery) (*EnergyHistogramDTO, error) {
	days := []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	if query.Weekday != nil {
		if *query.Weekday < 0 || *query.Weekday > 6 {
			return nil, domain.InvalidWeekday(*query.Weekday)
		}
		days = []time.Weekday{time.Weekday(*query.Weekday)}
	}

	histogram, err := h.Histogram(ctx)
	if err != nil {
		return nil, err
	}

	dto := &EnergyHistogramDTO{Observations: histogram.Size()}
	for _, day := range days {
		dist := histogram.DistributionFor(day)
		d := DayDTO{Weekday: int(day), Name: day.String(), Hours: make([]HourDTO, 0, len(dist))}
		for hour, counts := range dist {
			d.Hours = append(d.Hours, HourDTO{
				Hour:        hour,
				LevelCounts: counts,
				Dominant:    domain.DominantLevel(counts),
			})
		}
		dto.Days = append(dto.Days, d)
	}
	return dto, nil
}
