// Package app wires the application's dependencies for the CLI entrypoint.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	calendarApp "github.com/felixgeelhaar/daybreak/internal/calendar/application"
	calendarDomain "github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	calendarCache "github.com/felixgeelhaar/daybreak/internal/calendar/infrastructure/cache"
	calendarPersistence "github.com/felixgeelhaar/daybreak/internal/calendar/infrastructure/persistence"
	enrichmentDomain "github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
	enrichmentInfra "github.com/felixgeelhaar/daybreak/internal/enrichment/infrastructure"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/services"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	planningPersistence "github.com/felixgeelhaar/daybreak/internal/planning/infrastructure/persistence"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/daybreak/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// schemaEnsurer is implemented by repositories that create their own tables.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of these is non-nil depending on the configured
	// backend.
	SQLiteDB *sql.DB
	PgPool   *pgxpool.Pool

	RedisClient *redis.Client

	// Repositories
	MemoRepo  memo.Repository
	EventRepo calendarDomain.EventRepository

	// Event publishing
	Publisher eventbus.Publisher

	// Enrichment
	Enricher enrichmentDomain.Enricher

	// Calendar services
	TimetableService *calendarApp.TimetableService
	GapProvider      queries.GapProvider
	EventService     *calendarApp.EventService

	// Planning command handlers
	CreateMemoHandler   *commands.CreateMemoHandler
	AcceptMemoHandler   *commands.AcceptMemoHandler
	RejectMemoHandler   *commands.RejectMemoHandler
	CompleteMemoHandler *commands.CompleteMemoHandler
	UndoReactionHandler *commands.UndoReactionHandler
	ArchiveMemoHandler  *commands.ArchiveMemoHandler
	RolloverDayHandler  *commands.RolloverDayHandler

	// Planning query handlers
	ComputeSuggestionsHandler *queries.ComputeSuggestionsHandler
	GetMemoHandler            *queries.GetMemoHandler
	ListMemosHandler          *queries.ListMemosHandler
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initEventBus(); err != nil {
		c.Close()
		return nil, err
	}
	c.initRedis()
	c.initEnricher()
	c.initServices()

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	if c.Config.UsePostgres() {
		pool, err := postgres.Connect(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		c.PgPool = pool
		c.MemoRepo = planningPersistence.NewPostgresMemoRepository(pool)
		c.EventRepo = calendarPersistence.NewPostgresEventRepository(pool)
		c.Logger.Info("using postgres database")
	} else {
		db, err := sqlite.Open(ctx, c.Config.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		c.SQLiteDB = db
		c.MemoRepo = planningPersistence.NewSQLiteMemoRepository(db)
		c.EventRepo = calendarPersistence.NewSQLiteEventRepository(db)
		c.Logger.Info("using sqlite database")
	}

	for _, repo := range []any{c.MemoRepo, c.EventRepo} {
		if ensurer, ok := repo.(schemaEnsurer); ok {
			if err := ensurer.EnsureSchema(ctx); err != nil {
				c.Close()
				return fmt.Errorf("failed to ensure schema: %w", err)
			}
		}
	}

	return nil
}

func (c *Container) initEventBus() error {
	if c.Config.RabbitMQURL == "" {
		c.Publisher = eventbus.NewInProcessBus(c.Logger)
		return nil
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	c.Publisher = publisher
	return nil
}

func (c *Container) initRedis() {
	if c.Config.RedisURL == "" {
		return
	}
	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid redis url, gap cache disabled", "error", err)
		return
	}
	c.RedisClient = redis.NewClient(opts)
}

func (c *Container) initEnricher() {
	if c.Config.OpenAIAPIKey == "" {
		c.Enricher = enrichmentInfra.NewFallbackEnricher()
		c.Logger.Info("enrichment backend not configured, using deterministic defaults")
		return
	}
	enricherCfg := enrichmentInfra.DefaultOpenAIEnricherConfig(c.Config.OpenAIAPIKey)
	if c.Config.OpenAIBaseURL != "" {
		enricherCfg.BaseURL = c.Config.OpenAIBaseURL
	}
	if c.Config.OpenAIModel != "" {
		enricherCfg.Model = c.Config.OpenAIModel
	}
	c.Enricher = enrichmentInfra.NewOpenAIEnricher(enricherCfg, c.Logger)
}

func (c *Container) initServices() {
	scoringCfg := services.DefaultConfig()
	if c.Config.PlausibleDailyMinutes > 0 {
		scoringCfg.PlausibleDailyMinutes = c.Config.PlausibleDailyMinutes
	}

	tracker := services.NewPeriodTracker()
	calculator := services.NewNeedCalculator(scoringCfg)
	predictor := services.NewDurationPredictor(scoringCfg)
	builder := services.NewSuggestionBuilder(tracker, calculator, predictor, scoringCfg, c.Logger)
	allocator := services.NewGapAllocator(scoringCfg)

	timetableCfg := calendarApp.DefaultTimetableConfig()
	if c.Config.DayStartHour > 0 {
		timetableCfg.DayStartHour = c.Config.DayStartHour
	}
	if c.Config.DayEndHour > 0 {
		timetableCfg.DayEndHour = c.Config.DayEndHour
	}
	c.TimetableService = calendarApp.NewTimetableService(c.EventRepo, timetableCfg, c.Logger)

	c.GapProvider = c.TimetableService
	var invalidator calendarApp.GapInvalidator
	if c.RedisClient != nil {
		gapCache := calendarCache.NewRedisGapCache(c.TimetableService, c.RedisClient, c.Config.GapCacheTTL, c.Logger)
		c.GapProvider = gapCache
		invalidator = gapCache
	}
	c.EventService = calendarApp.NewEventService(c.EventRepo, invalidator, c.Logger)

	c.CreateMemoHandler = commands.NewCreateMemoHandler(c.MemoRepo, c.Enricher, c.Publisher, c.Logger)
	c.AcceptMemoHandler = commands.NewAcceptMemoHandler(c.MemoRepo, c.Publisher, c.Logger)
	c.RejectMemoHandler = commands.NewRejectMemoHandler(c.MemoRepo, c.Publisher, c.Logger)
	c.CompleteMemoHandler = commands.NewCompleteMemoHandler(c.MemoRepo, predictor, c.Publisher, c.Logger)
	c.UndoReactionHandler = commands.NewUndoReactionHandler(c.MemoRepo, c.Publisher, c.Logger)
	c.ArchiveMemoHandler = commands.NewArchiveMemoHandler(c.MemoRepo, c.Logger)
	c.RolloverDayHandler = commands.NewRolloverDayHandler(c.MemoRepo, tracker, c.Logger)

	c.ComputeSuggestionsHandler = queries.NewComputeSuggestionsHandler(c.MemoRepo, builder, allocator, c.GapProvider, c.Logger)
	c.GetMemoHandler = queries.NewGetMemoHandler(c.MemoRepo)
	c.ListMemosHandler = queries.NewListMemosHandler(c.MemoRepo)
}

// Close releases all held connections.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite database", "error", err)
		}
	}
	if c.PgPool != nil {
		c.PgPool.Close()
	}
}
