// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkrzemien-software/homely-sub001/internal/admin"
	"github.com/mkrzemien-software/homely-sub001/internal/auth"
	"github.com/mkrzemien-software/homely-sub001/internal/category"
	"github.com/mkrzemien-software/homely-sub001/internal/config"
	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/dashboard"
	"github.com/mkrzemien-software/homely-sub001/internal/event"
	"github.com/mkrzemien-software/homely-sub001/internal/health"
	"github.com/mkrzemien-software/homely-sub001/internal/household"
	"github.com/mkrzemien-software/homely-sub001/internal/metrics"
	"github.com/mkrzemien-software/homely-sub001/internal/middleware"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
	"github.com/mkrzemien-software/homely-sub001/internal/server"
	"github.com/mkrzemien-software/homely-sub001/internal/task"
	"github.com/mkrzemien-software/homely-sub001/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "ES256")

	txRunner := core.NewTxRunner(db)

	planRepo := plan.NewRepository()
	guard := plan.NewGuard(planRepo)

	userRepo := user.NewRepository()
	userSvc := user.NewService(db, userRepo)
	userProvider := user.NewProvider(db, userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userProvider, cfg.JWT)
	authHandler := auth.NewHandler(authSvc)

	householdRepo := household.NewRepository()
	householdSvc := household.NewService(
		db, txRunner, householdRepo, planRepo, guard, cfg.Invite.TokenExpire,
	)
	householdHandler := household.NewHandler(householdSvc)

	categoryRepo := category.NewRepository()
	categorySvc := category.NewService(db, categoryRepo, householdSvc)
	categoryHandler := category.NewHandler(categorySvc)

	taskRepo := task.NewRepository()
	eventRepo := event.NewRepository()
	historyRepo := event.NewHistoryRepository()
	seeder := event.NewSeeder(eventRepo)

	taskSvc := task.NewService(
		db, txRunner, taskRepo, guard, seeder, householdSvc,
	)
	taskHandler := task.NewHandler(taskSvc)

	dashboardSvc := dashboard.NewService(
		db, redis, eventRepo, householdSvc, logger,
	)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	eventSvc := event.NewService(
		db, txRunner, eventRepo, historyRepo, taskRepo, guard,
		householdSvc, dashboardSvc,
	)
	eventHandler := event.NewHandler(eventSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DB:         db,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())
	router.Handle("/metrics", metrics.Handler())

	authenticator := middleware.Authenticator(jwtManager)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			userHandler.RegisterRoutes(r)
			householdHandler.RegisterRoutes(r)
			categoryHandler.RegisterTypeRoutes(r)

			r.Route("/households/{householdID}", func(r chi.Router) {
				categoryHandler.RegisterRoutes(r)
				taskHandler.RegisterRoutes(r)
				eventHandler.RegisterRoutes(r)
				dashboardHandler.RegisterRoutes(r)
			})
		})

		adminHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
