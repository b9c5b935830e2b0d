// Package app wires configuration, storage, messaging and the application
// handlers into one container shared by every transport.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	calendarCommands "github.com/felixgeelhaar/tempo/internal/calendar/application/commands"
	calendarQueries "github.com/felixgeelhaar/tempo/internal/calendar/application/queries"
	"github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/ics"
	insightsQueries "github.com/felixgeelhaar/tempo/internal/insights/application/queries"
	insightsServices "github.com/felixgeelhaar/tempo/internal/insights/application/services"
	insightsSubscribers "github.com/felixgeelhaar/tempo/internal/insights/application/subscribers"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	schedulerServices "github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	wellnessCommands "github.com/felixgeelhaar/tempo/internal/wellness/application/commands"
	wellnessQueries "github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Location *time.Location

	// Storage
	DB           database.Connection
	Repositories *Repositories
	UnitOfWork   sharedApplication.UnitOfWork
	Cache        cache.Cache

	// Messaging
	Bus             *eventbus.InProcessEventBus
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	Health *observability.HealthRegistry

	// Task handlers
	CreateTaskHandler          *commands.CreateTaskHandler
	UpdateTaskHandler          *commands.UpdateTaskHandler
	DeleteTaskHandler          *commands.DeleteTaskHandler
	UpdateSubtaskStatusHandler *commands.UpdateSubtaskStatusHandler
	ListTasksHandler           *queries.ListTasksHandler
	GetTaskHandler             *queries.GetTaskHandler
	GetStatsHandler            *queries.GetStatsHandler

	// Wellness handlers
	RecordEnergyHandler       *wellnessCommands.RecordEnergyHandler
	RecordStudySessionHandler *wellnessCommands.RecordStudySessionHandler
	GetEnergyHistogramHandler *wellnessQueries.GetEnergyHistogramHandler

	// Calendar handlers
	CreateRecurringEventHandler *calendarCommands.CreateRecurringEventHandler
	UpdateRecurringEventHandler *calendarCommands.UpdateRecurringEventHandler
	DeleteRecurringEventHandler *calendarCommands.DeleteRecurringEventHandler
	ImportCalendarHandler       *calendarCommands.ImportCalendarHandler
	ListRecurringEventsHandler  *calendarQueries.ListRecurringEventsHandler

	// Schedule handlers
	SchedulerEngine          *schedulerServices.SchedulerEngine
	SaveSleepScheduleHandler *scheduleCommands.SaveSleepScheduleHandler
	PinAssignmentHandler     *scheduleCommands.PinAssignmentHandler
	UnpinAssignmentHandler   *scheduleCommands.UnpinAssignmentHandler
	GenerateScheduleHandler  *scheduleQueries.GenerateScheduleHandler
	ExportScheduleHandler    *scheduleQueries.ExportScheduleHandler
	GetSleepScheduleHandler  *scheduleQueries.GetSleepScheduleHandler
	ListPinnedHandler        *scheduleQueries.ListPinnedHandler

	// Insights handlers
	GetRecommendationsHandler *insightsQueries.GetRecommendationsHandler

	closers []func() error
}

// NewContainer creates and wires all dependencies. Redis and RabbitMQ are
// optional: without them the cache lives in memory and events are only
// dispatched in-process.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Location: loc,
		Health:   observability.NewHealthRegistry(),
	}

	conn, err := database.Open(ctx, database.Config{URL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	c.DB = conn
	c.closers = append(c.closers, conn.Close)
	logger.Debug("database opened", "driver", conn.Driver())

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.Repositories = NewRepositories(conn)
	c.UnitOfWork = database.NewUnitOfWork(conn)
	c.Health.Register("database", observability.PingChecker("database", observability.HealthStatusUnhealthy, conn.Ping))

	if err := c.initCache(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initMessaging(); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initCache(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		c.Cache = cache.NewMemoryCache()
		return nil
	}

	redisCache, err := cache.DialRedis(ctx, c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, recommendations cache in memory", "error", err)
		c.Cache = cache.NewMemoryCache()
		return nil
	}

	c.Cache = redisCache
	c.closers = append(c.closers, redisCache.Close)
	c.Health.Register("cache", observability.PingChecker("cache", observability.HealthStatusDegraded, redisCache.Ping))
	c.Logger.Debug("connected to Redis")
	return nil
}

func (c *Container) initMessaging() error {
	c.Bus = eventbus.NewInProcessEventBus(c.Logger)
	c.Bus.RegisterConsumer(insightsSubscribers.NewRecommendationInvalidator(c.Cache, c.Logger))

	publishers := []eventbus.Publisher{c.Bus}
	if c.Config.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		switch {
		case err == nil:
			publishers = append(publishers, rabbit)
		case c.Config.IsDevelopment():
			c.Logger.Warn("RabbitMQ not available, events stay in-process", "error", err)
		default:
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	}
	c.EventPublisher = eventbus.NewMultiPublisher(publishers...)
	c.closers = append(c.closers, c.EventPublisher.Close)

	processorCfg := outbox.DefaultProcessorConfig()
	if c.Config.OutboxPollInterval > 0 {
		processorCfg.PollInterval = c.Config.OutboxPollInterval
	}
	if c.Config.OutboxBatchSize > 0 {
		processorCfg.BatchSize = c.Config.OutboxBatchSize
	}
	if c.Config.OutboxMaxRetries > 0 {
		processorCfg.MaxRetries = c.Config.OutboxMaxRetries
	}
	c.OutboxProcessor = outbox.NewProcessor(c.Repositories.Outbox, c.EventPublisher, processorCfg, c.Logger)
	return nil
}

func (c *Container) initHandlers() {
	r := c.Repositories
	uow := c.UnitOfWork

	c.CreateTaskHandler = commands.NewCreateTaskHandler(r.Tasks, r.Outbox, uow)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(r.Tasks, r.Outbox, uow)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(r.Tasks, r.Outbox, uow)
	c.UpdateSubtaskStatusHandler = commands.NewUpdateSubtaskStatusHandler(r.Tasks, r.Outbox, uow)
	c.ListTasksHandler = queries.NewListTasksHandler(r.Tasks)
	c.GetTaskHandler = queries.NewGetTaskHandler(r.Tasks)
	c.GetStatsHandler = queries.NewGetStatsHandler(r.Tasks, r.Sessions)

	c.RecordEnergyHandler = wellnessCommands.NewRecordEnergyHandler(r.Observations, r.Outbox, uow)
	c.RecordStudySessionHandler = wellnessCommands.NewRecordStudySessionHandler(r.Sessions, r.Observations, r.Outbox, uow, c.Location)
	c.GetEnergyHistogramHandler = wellnessQueries.NewGetEnergyHistogramHandler(r.Observations)

	fetcher := ics.NewFetcher(nil, ics.FetcherConfig{
		Timeout:          c.Config.CalendarFetchTimeout,
		FailureThreshold: uint32(max(c.Config.CalendarBreakerFailures, 0)),
		OpenTimeout:      c.Config.CalendarBreakerTimeout,
	}, c.Logger)
	c.CreateRecurringEventHandler = calendarCommands.NewCreateRecurringEventHandler(r.Events, r.Outbox, uow)
	c.UpdateRecurringEventHandler = calendarCommands.NewUpdateRecurringEventHandler(r.Events, r.Outbox, uow)
	c.DeleteRecurringEventHandler = calendarCommands.NewDeleteRecurringEventHandler(r.Events, r.Outbox, uow)
	c.ImportCalendarHandler = calendarCommands.NewImportCalendarHandler(r.Events, r.Outbox, uow, fetcher, c.Logger)
	c.ListRecurringEventsHandler = calendarQueries.NewListRecurringEventsHandler(r.Events)

	c.SchedulerEngine = schedulerServices.NewSchedulerEngine(schedulerServices.DefaultSchedulerConfig())
	c.SaveSleepScheduleHandler = scheduleCommands.NewSaveSleepScheduleHandler(r.Sleep, r.Outbox, uow)
	c.PinAssignmentHandler = scheduleCommands.NewPinAssignmentHandler(r.Tasks, r.Assignments, r.Outbox, uow, c.Logger)
	c.UnpinAssignmentHandler = scheduleCommands.NewUnpinAssignmentHandler(r.Assignments, r.Outbox, uow)
	c.GenerateScheduleHandler = scheduleQueries.NewGenerateScheduleHandler(
		r.Tasks, r.Events, r.Observations, r.Sleep, r.Assignments,
		uow, c.SchedulerEngine, c.Location, c.Logger,
	)
	c.ExportScheduleHandler = scheduleQueries.NewExportScheduleHandler(c.GenerateScheduleHandler, c.Location)
	c.GetSleepScheduleHandler = scheduleQueries.NewGetSleepScheduleHandler(r.Sleep)
	c.ListPinnedHandler = scheduleQueries.NewListPinnedHandler(r.Assignments)

	c.GetRecommendationsHandler = insightsQueries.NewGetRecommendationsHandler(
		r.Tasks, r.Observations,
		insightsServices.NewRecommender(insightsServices.DefaultRecommenderConfig()),
		c.Cache, c.Config.RecommendationCacheTTL, c.Location, c.Logger,
	)
}

// Today returns the current calendar date in the configured timezone.
func (c *Container) Today() time.Time {
	return schedulingDomain.DateOf(time.Now().In(c.Location))
}

// StartBackground prunes old outbox messages and starts relaying new ones.
// Long-running transports call it once after construction.
func (c *Container) StartBackground(ctx context.Context) error {
	c.pruneOutbox(ctx)
	if !c.Config.OutboxProcessorEnabled {
		return nil
	}
	if err := c.OutboxProcessor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start outbox processor: %w", err)
	}
	return nil
}

// Flush relays pending outbox messages once. One-shot CLI commands call it
// before exiting so subscribers see their writes.
func (c *Container) Flush(ctx context.Context) error {
	return c.OutboxProcessor.ProcessOnce(ctx)
}

func (c *Container) pruneOutbox(ctx context.Context) {
	if c.Config.OutboxRetentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -c.Config.OutboxRetentionDays)
	n, err := c.Repositories.Outbox.DeleteOld(ctx, cutoff)
	if err != nil {
		c.Logger.Warn("failed to prune outbox", "error", err)
		return
	}
	if n > 0 {
		c.Logger.Info("pruned outbox", "deleted", n)
	}
}

// Close stops background work and releases connections in reverse order.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("error during shutdown", "error", err)
		}
	}
	c.closers = nil
}
