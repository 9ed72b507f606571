package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/mindora/wellness/internal/cache"
	"github.com/mindora/wellness/internal/catalog"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/database"
	"github.com/mindora/wellness/internal/handlers"
	"github.com/mindora/wellness/internal/logging"
	"github.com/mindora/wellness/internal/metrics"
	"github.com/mindora/wellness/internal/middleware"
	"github.com/mindora/wellness/internal/routes"
	"github.com/mindora/wellness/internal/services"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Storage
	backend, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch) and 30-day retention
	cleanupDone := make(chan struct{})
	var pgLogHandler *logging.PGHandler
	if backend.SQL != nil {
		pgLogHandler = logging.NewPGHandler(backend.SQL)
		logging.Setup(cfg.LogLevel, pgLogHandler)
		logging.StartCleanup(backend.SQL, cleanupDone)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	// Redis: token denylist and shared rate-limit counters
	var (
		rdb            *redis.Client
		denylist       cache.Denylist = cache.NewMemoryDenylist()
		limiterStorage fiber.Storage
	)
	if cfg.RedisURL != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		denylist = cache.NewRedisDenylist(rdb)
		limiterStorage = cache.NewStorage(rdb, "limiter:")
	} else {
		slog.Warn("REDIS_URL not set, token denylist and rate limits are per process")
	}

	collectorCtx, stopCollector := context.WithCancel(ctx)
	if cfg.MetricsEnabled {
		metrics.StartSystemCollector(collectorCtx, 15*time.Second)
	}

	// Services
	store := backend.Store
	authService := services.NewAuthService(store.Users, denylist, cfg)
	moodService := services.NewMoodService(store.Moods)
	journalService := services.NewJournalService(store.Journals)
	exerciseService := services.NewExerciseService(cat, store.Exercises, store.Moods)
	userService := services.NewUserService(store.Users)
	reportService := services.NewReportService(store, cfg.ReportLocation)
	adminService := services.NewAdminService(store, authService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, routes.Options{
		Config:         cfg,
		Users:          store.Users,
		Revocations:    authService,
		LimiterStorage: limiterStorage,
	}, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, cfg),
		Health:   handlers.NewHealthHandler(store, rdb),
		Mood:     handlers.NewMoodHandler(moodService),
		Journal:  handlers.NewJournalHandler(journalService),
		Exercise: handlers.NewExerciseHandler(exerciseService),
		User:     handlers.NewUserHandler(userService),
		Report:   handlers.NewReportHandler(reportService),
		Admin:    handlers.NewAdminHandler(adminService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stopCollector()
	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		slog.Error("database close error", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
