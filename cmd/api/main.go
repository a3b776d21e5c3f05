package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exampleapi/docs"
	"exampleapi/internal/config"
	"exampleapi/internal/database"
	"exampleapi/internal/database/migration"
	handlers "exampleapi/internal/http/handler"
	"exampleapi/internal/http/middleware"
	"exampleapi/internal/logging"
	"exampleapi/internal/otel"
	"exampleapi/internal/repository/postgres"
	"exampleapi/internal/service"
	"exampleapi/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// @title Example Content API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	loc, err := cfg.Location()
	if err != nil {
		logging.Stdout(nil).Error("invalid_config", err, nil)
		return err
	}
	logger := logging.Stdout(loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Error("tracing_init_failed", err, nil)
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logger.Error("database_connect_failed", err, map[string]any{"db_host": cfg.Database.Host})
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return err
		}
	}

	v := validator.New()
	svcs := handlers.Services{
		Blogs:      service.NewBlogService(postgres.NewBlogPostgres(db), v),
		Entries:    service.NewEntryService(postgres.NewEntryPostgres(db), v),
		Authors:    service.NewAuthorService(postgres.NewAuthorPostgres(db), v),
		Comments:   service.NewCommentService(postgres.NewCommentPostgres(db), v),
		Datum:      service.NewProfileDatumService(postgres.NewProfileDatumPostgres(db), v),
		Categories: service.NewCategoryService(postgres.NewCategoryPostgres(db), v),
		Targets:    service.NewTargetService(postgres.NewTargetPostgres(db), v),
		Profiles:   service.NewProfileService(postgres.NewProfilePostgres(db), v),
		AuthorBios: service.NewAuthorBioService(postgres.NewAuthorBioPostgres(db), v),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Error("metrics_init_failed", err, nil)
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		StrictRouting:         true,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", map[string]any{"addr": addr})
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server_failed", err, nil)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutting_down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("server_shutdown_failed", err, nil)
		return err
	}
	return nil
}
