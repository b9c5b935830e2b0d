package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempo/internal/insights/application/services"
	"github.com/felixgeelhaar/tempo/internal/insights/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// CachePrefix is the key prefix of cached recommendation lists.
const CachePrefix = "recommendations:"

// RecommendationsDTO is the advisory list with the hour it was computed for.
type RecommendationsDTO struct {
	GeneratedFor string            `json:"generated_for"`
	Advisories   []domain.Advisory `json:"recommendations"`
	Cached       bool              `json:"cached"`
}

// GetRecommendationsHandler computes advisories, caching them per hour.
type GetRecommendationsHandler struct {
	taskRepo        task.Repository
	observationRepo wellness.ObservationRepository
	recommender     *services.Recommender
	cache           cache.Cache
	ttl             time.Duration
	loc             *time.Location
	now             func() time.Time
	logger          *slog.Logger
}

// NewGetRecommendationsHandler creates a new GetRecommendationsHandler.
// A nil cache disables caching.
func NewGetRecommendationsHandler(
	taskRepo task.Repository,
	observationRepo wellness.ObservationRepository,
	recommender *services.Recommender,
	c cache.Cache,
	ttl time.Duration,
	loc *time.Location,
	logger *slog.Logger,
) *GetRecommendationsHandler {
	if recommender == nil {
		recommender = services.NewRecommender(services.DefaultRecommenderConfig())
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GetRecommendationsHandler{
		taskRepo:        taskRepo,
		observationRepo: observationRepo,
		recommender:     recommender,
		cache:           c,
		ttl:             ttl,
		loc:             loc,
		now:             time.Now,
		logger:          logger,
	}
}

// Handle returns the advisories for the current hour.
func (h *GetRecommendationsHandler) Handle(ctx context.Context) (*RecommendationsDTO, error) {
	now := h.now().In(h.loc)
	hour := now.Format("2006-01-02T15")
	key := CachePrefix + hour
	logger := observability.LogOperation(h.logger, "recommendations.get", "hour", hour)

	if h.cache != nil {
		raw, err := h.cache.Get(ctx, key)
		switch {
		case err == nil:
			var advisories []domain.Advisory
			if err := json.Unmarshal(raw, &advisories); err == nil {
				return &RecommendationsDTO{GeneratedFor: hour, Advisories: advisories, Cached: true}, nil
			}
			logger.Warn("discarding unreadable cached recommendations")
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn("recommendation cache unavailable", "error", err)
		}
	}

	tasks, err := h.taskRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	observations, err := h.observationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := h.recommender.SelectCandidates(tasks)
	advisories := h.recommender.Recommend(candidates, wellness.NewHistogram(observations), now)

	if h.cache != nil {
		if raw, err := json.Marshal(advisories); err == nil {
			if err := h.cache.Set(ctx, key, raw, h.ttl); err != nil {
				logger.Warn("failed to cache recommendations", "error", err)
			}
		}
	}

	logger.Debug("recommendations computed", "candidates", len(candidates), "advisories", len(advisories))
	return &RecommendationsDTO{GeneratedFor: hour, Advisories: advisories}, nil
}
