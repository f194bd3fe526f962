package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/handler"
	"github.com/noah-isme/autoservice-booking-api/internal/repository"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
	"github.com/noah-isme/autoservice-booking-api/pkg/cache"
	"github.com/noah-isme/autoservice-booking-api/pkg/config"
	"github.com/noah-isme/autoservice-booking-api/pkg/database"
	"github.com/noah-isme/autoservice-booking-api/pkg/jobs"
)

// App is the wired service graph shared by the HTTP server and slotctl.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *sqlx.DB
	Metrics      *service.MetricsService
	Scheduling   *service.SchedulingService
	Reservations *service.ReservationService
	Tokens       *service.CustomerTokenService
	Queue        *jobs.Queue

	cacheRepo *repository.CacheRepository
}

// OpenDatabase connects to Postgres and applies pending migrations.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// New wires repositories and services on top of db. Redis is optional: when
// it cannot be reached the engine runs uncached.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, db *sqlx.DB) (*App, error) {
	location, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", cfg.Location, err)
	}
	days, err := service.ParseBusinessHours(cfg.Scheduling.BusinessHours)
	if err != nil {
		return nil, fmt.Errorf("parse business hours: %w", err)
	}
	calendar, err := service.NewBusinessCalendar(days)
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}

	profileRepo := repository.NewServiceProfileRepository(db)
	catalog, err := service.LoadServiceCatalog(ctx, profileRepo, cfg.Scheduling.MinServiceMinutes)
	if err != nil {
		return nil, err
	}

	cacheEnabled := cfg.Cache.Enabled
	var cacheRepo *repository.CacheRepository
	if cacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, running without result cache", zap.Error(err))
			cacheEnabled = false
		}
		cacheRepo = repository.NewCacheRepository(client, logger)
	} else {
		cacheRepo = repository.NewCacheRepository(nil, logger)
	}

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.DefaultTTL, logger, cacheEnabled)
	reservationRepo := repository.NewReservationRepository(db)

	scheduling := service.NewSchedulingService(service.SchedulingContext{
		Cache:           cacheSvc,
		Reservations:    reservationRepo,
		History:         reservationRepo,
		CustomerHistory: reservationRepo,
		Metrics:         metrics,
		Logger:          logger,
		Location:        location,
	}, calendar, catalog, service.SchedulingConfig{
		GranularityMinutes: cfg.Scheduling.GranularityMinutes,
		BufferMinutes:      cfg.Scheduling.BufferMinutes,
		HorizonDays:        cfg.Scheduling.HorizonDays,
		MaxHorizonDays:     cfg.Scheduling.MaxHorizonDays,
		TopDays:            cfg.Scheduling.TopDays,
		SlotsPerDay:        cfg.Scheduling.SlotsPerDay,
		DemandWindowDays:   cfg.Scheduling.DemandWindowDays,
		PeakThreshold:      cfg.Scheduling.PeakThreshold,
		DemandTTL:          cfg.Scheduling.DemandTTL,
		PreferenceTTL:      cfg.Scheduling.PreferenceTTL,
		SuggestionTTL:      cfg.Scheduling.SuggestionTTL,
	}, nil)

	invalidator := service.NewCacheInvalidator(cacheSvc, nil, logger)
	queue := jobs.NewQueue("cache-invalidation", invalidator.Handler(), jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logger,
	})
	invalidator.UseQueue(queue)

	validate := validator.New()
	return &App{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Metrics:      metrics,
		Scheduling:   scheduling,
		Reservations: service.NewReservationService(reservationRepo, scheduling, invalidator, validate, logger),
		Tokens:       service.NewCustomerTokenService(cfg.JWT.Secret, 0),
		Queue:        queue,
		cacheRepo:    cacheRepo,
	}, nil
}

// Start launches background workers.
func (a *App) Start(ctx context.Context) {
	a.Queue.Start(ctx)
}

// Close stops workers and releases connections.
func (a *App) Close() {
	a.Queue.Stop()
	if err := a.cacheRepo.Close(); err != nil {
		a.Logger.Warn("close redis", zap.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("close database", zap.Error(err))
	}
}

// Handlers builds the HTTP handlers for the wired services.
func (a *App) Handlers() Handlers {
	return Handlers{
		Scheduling:   handler.NewSchedulingHandler(a.Scheduling, validator.New()),
		Reservations: handler.NewReservationHandler(a.Reservations),
		Metrics: handler.NewMetricsHandler(a.Metrics, map[string]handler.Pinger{
			"database": a.DB.PingContext,
			"cache":    a.cacheRepo.Ping,
		}),
	}
}
