package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docshelf/internal/config"
	"docshelf/internal/database"
	"docshelf/internal/database/migration"
	"docshelf/internal/fetcher"
	handlers "docshelf/internal/http/handler"
	"docshelf/internal/http/middleware"
	"docshelf/internal/logger"
	"docshelf/internal/otel"
	"docshelf/internal/repository/postgres"
	"docshelf/internal/service"
	"docshelf/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title docshelf API
// @version 1.0
// @description Upload, browse, comment on and download documents.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "docshelf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, logger.LoadLocation(cfg.Timezone))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	// Refuse to start with missing credentials
	if err := cfg.Validate(); err != nil {
		log.Error("invalid_configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Initialize the blob store selected by STORAGE_DRIVER
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	docRepo := postgres.NewDocumentPostgres(db)
	commentRepo := postgres.NewCommentPostgres(db)
	fetch := fetcher.New(time.Duration(cfg.FetchTimeoutSec)*time.Second, int64(cfg.MaxUploadBytes))

	docSvc := service.NewDocumentService(store, docRepo, commentRepo, fetch,
		service.WithMaxUploadBytes(int64(cfg.MaxUploadBytes)),
		service.WithLogger(log.With(zap.String("component", "service"))),
	)
	commentSvc := service.NewCommentService(commentRepo, docRepo, cfg.CommentsRequireDocument)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "docshelf",
		BodyLimit:             cfg.MaxUploadBytes,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	// RequestID runs inside the server span so it can tag it with the id
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	deps := handlers.Dependencies{
		DB:        db,
		Documents: docSvc,
		Comments:  commentSvc,
		Metrics:   reg,
		Blobs:     store,
		Log:       log,
	}
	handlers.RegisterRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting",
			zap.String("port", cfg.Port),
			zap.String("storage_driver", cfg.Storage.Driver),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
