package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/papana-farm/metdash/docs"
	"github.com/papana-farm/metdash/internal/config"
	"github.com/papana-farm/metdash/internal/handlers/dashboard"
	"github.com/papana-farm/metdash/internal/repository"
	"github.com/papana-farm/metdash/internal/retention"
	"github.com/papana-farm/metdash/internal/services/amd"
	loggerT "github.com/papana-farm/metdash/internal/services/logger"
	metricsSvc "github.com/papana-farm/metdash/internal/services/metrics"
	"github.com/papana-farm/metdash/internal/services/observations"
	"github.com/papana-farm/metdash/internal/services/session"
	"github.com/papana-farm/metdash/internal/views"
	fLogger "github.com/papana-farm/metdash/pkg/logger"
)

const (
	timeoutDuration = 5 * time.Second

	providerName = "AMD"
	namespace    = "metdash"
)

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	Observations *observations.Service
	Sessions     session.Store
	FetchLog     *repository.FetchLogRepository
	Pruner       *retention.Pruner

	Router *gin.Engine
	Srv    *http.Server
	Db     *sql.DB

	redis      *redis.Client
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start initializes services, serves HTTP and blocks until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init(ctx)
	if err != nil {
		return err
	}

	if err := srvContainer.Pruner.Start(ctx); err != nil {
		a.Shutdown(srvContainer)
		return fmt.Errorf("start fetch log pruner: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", srvContainer.Srv.Addr).Msg("HTTP server running")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping dashboard")
	case serveErr = <-errCh:
		a.l.Error().Err(serveErr).Msg("HTTP server failed")
	}

	a.Shutdown(srvContainer)
	return serveErr
}

// Init builds every dependency and registers the routes without listening.
func (a *App) Init(ctx context.Context) (*ServiceContainer, error) {
	a.l.Info().
		Str("address", a.cfg.ServerAddress()).
		Str("amd_url", a.cfg.AMD.URL).
		Str("db", a.cfg.DB.Source).
		Bool("redis", a.cfg.Redis.Addr != "").
		Msg("initializing dashboard")

	if err := views.LoadTemplates(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	db, err := repository.CreateSqliteDb(a.cfg.DB.Dialect, a.cfg.DB.Source)
	if err != nil {
		return nil, fmt.Errorf("open fetch log database: %w", err)
	}
	if err := repository.Migrate(db, a.cfg.DB.Dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate fetch log database: %w", err)
	}
	fetchLog := repository.NewFetchLogRepository(db)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, outbound requests will not be logged")
		fileLogger = zap.NewNop()
	}

	// AMD client: logged transport -> rate limit -> circuit breaker
	httpLogClient := &http.Client{Transport: loggerT.NewRoundTripper(fileLogger)}
	breakerCfg := amd.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	provider := amd.NewBreakerClient(providerName, breakerCfg,
		amd.NewRateLimitedClient(a.cfg.AMD.RatePerS, a.cfg.AMD.Burst,
			amd.NewClient(a.cfg.AMD.URL, a.cfg.AMD.User, a.cfg.AMD.Password, httpLogClient, a.l),
		),
	)

	obsService := observations.NewService(a.l, provider, fetchLog, a.m,
		time.Duration(a.cfg.AMD.Timeout)*time.Second)

	sessionTTL := time.Duration(a.cfg.Redis.LiveTime) * time.Hour
	var (
		redisClient *redis.Client
		store       session.Store
	)
	if a.cfg.Redis.Addr != "" {
		redisClient = newRedisConnection(a.cfg.Redis.Addr, a.cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, timeoutDuration)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			a.l.Warn().Err(err).Str("addr", a.cfg.Redis.Addr).Msg("redis not reachable yet, sessions fall back to defaults")
		}
		cancel()
		store = session.NewRedisStore(redisClient, a.l, sessionTTL)
	} else {
		a.l.Info().Msg("REDIS_ADDR not set, keeping sessions in memory")
		store = session.NewMemoryStore(sessionTTL)
	}
	sessions := session.NewMetricsDecorator(store, metricsSvc.NewPromCollector(namespace, a.m.Registerer()))

	pruner := retention.New(fetchLog, a.l, a.cfg.FetchLog.PruneSpec,
		time.Duration(a.cfg.FetchLog.RetentionHours)*time.Hour)

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())

	dashHandler := dashboard.NewHandler(obsService, sessions, fetchLog, a.l)
	healthHandler := dashboard.NewHealthHandler(fetchLog)

	router.GET("/", dashHandler.ShowDashboard)
	router.POST("/", dashHandler.SubmitDashboard)

	api := router.Group("/api/v1")
	{
		api.GET("/locations", dashHandler.ListLocations)
		api.GET("/variables", dashHandler.ListVariables)
		api.GET("/observations", dashHandler.GetObservations)
		api.GET("/fetches", dashHandler.ListFetches)
	}

	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	httpServer := &http.Server{
		Addr:              a.cfg.ServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return &ServiceContainer{
		Observations: obsService,
		Sessions:     sessions,
		FetchLog:     fetchLog,
		Pruner:       pruner,
		Router:       router,
		Srv:          httpServer,
		Db:           db,
		redis:        redisClient,
		fileLogger:   fileLogger,
	}, nil
}

// Shutdown stops the pruner, drains HTTP, closes storage and syncs the file logger.
func (a *App) Shutdown(srvContainer *ServiceContainer) {
	a.l.Info().Msg("stopping dashboard…")

	srvContainer.Pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.l.Error().Err(err).Msg("DB close error")
	} else {
		a.l.Info().Msg("database closed")
	}

	if srvContainer.redis != nil {
		if err := srvContainer.redis.Close(); err != nil {
			a.l.Error().Err(err).Msg("redis close error")
		}
	}

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.l.Warn().Err(err).Msg("failed to sync file logger")
	}

	a.l.Info().Msg("shutdown complete")
}

func newRedisConnection(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, DB: db})
}
