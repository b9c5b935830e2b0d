// Package subscribers reacts to domain events that stale cached insights.
package subscribers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/insights/application/queries"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
)

// RecommendationInvalidator drops cached recommendations whenever tasks or
// the energy log change.
type RecommendationInvalidator struct {
	cache  cache.Cache
	logger *slog.Logger
}

// NewRecommendationInvalidator creates the subscriber.
func NewRecommendationInvalidator(c cache.Cache, logger *slog.Logger) *RecommendationInvalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationInvalidator{cache: c, logger: logger}
}

// EventTypes implements eventbus.EventConsumer.
func (s *RecommendationInvalidator) EventTypes() []string {
	return []string{
		task.RoutingKeyCreated,
		task.RoutingKeyUpdated,
		task.RoutingKeyDeleted,
		wellness.RoutingKeyEnergyRecorded,
		wellness.RoutingKeySessionRecorded,
	}
}

// Handle implements eventbus.EventConsumer.
func (s *RecommendationInvalidator) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if err := s.cache.DeletePrefix(ctx, queries.CachePrefix); err != nil {
		return err
	}
	s.logger.Debug("recommendation cache invalidated", "routing_key", event.RoutingKey, "event_id", event.EventID)
	return nil
}
