package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stmtapi/docs"
	"stmtapi/internal/agent"
	"stmtapi/internal/batch"
	"stmtapi/internal/cache"
	"stmtapi/internal/config"
	"stmtapi/internal/database"
	"stmtapi/internal/database/migration"
	"stmtapi/internal/extract"
	handlers "stmtapi/internal/http/handler"
	"stmtapi/internal/http/middleware"
	"stmtapi/internal/llm"
	"stmtapi/internal/logx"
	"stmtapi/internal/notify"
	"stmtapi/internal/otel"
	"stmtapi/internal/repository/postgres"
	"stmtapi/internal/service"
	"stmtapi/internal/storage"
)

// @title Statement API
// @version 1.0
// @BasePath /
func main() {
	loc := time.UTC

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing degrades to no-op on exporter failure
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// PostgreSQL connection (pooled via database/sql, instrumented via otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// S3-compatible object storage for uploaded statements
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Redis answer cache is optional; without it every question hits the LLM
	var answers cache.AnswerCache
	if cfg.Redis.Addr != "" {
		answers, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	} else {
		logx.Info("answer_cache_disabled", map[string]any{"component": "main"})
	}

	// LLM client is optional; without it query endpoints report unavailable
	var llmClient llm.Client
	if cfg.LLM.APIKey != "" {
		llmClient, err = llm.New(cfg.LLM)
		if err != nil {
			log.Fatalf("failed to create llm client: %v", err)
		}
	} else {
		logx.Info("llm_disabled", map[string]any{"component": "main"})
	}

	// Email notifier is optional; NewEmail returns nil when unconfigured
	notifier, err := notify.NewEmail(cfg.SMTP, cfg.SMTP.To)
	if err != nil {
		log.Fatalf("failed to create email notifier: %v", err)
	}

	// Repositories
	docRepo := postgres.NewDocumentPostgres(db)
	secRepo := postgres.NewSecurityPostgres(db)
	portfolioRepo := postgres.NewPortfolioPostgres(db)
	jobRepo := postgres.NewBatchJobPostgres(db)
	feedbackRepo := postgres.NewFeedbackPostgres(db)

	// Services
	docSvc := service.NewDocumentService(objStore, docRepo, secRepo)
	processingSvc := service.NewProcessingService(docRepo, secRepo, portfolioRepo, extract.New(), notifier)
	querySvc := service.NewQueryService(
		docRepo,
		secRepo,
		agent.NewQueryAgent(llmClient),
		agent.NewComparisonAgent(llmClient),
		answers,
	)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, secRepo)
	feedbackSvc := service.NewFeedbackService(docRepo, feedbackRepo)

	runner := batch.NewRunner(jobRepo, docRepo, processingSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.MaxUploadBytes),
	})

	// Global middleware: request IDs first, then tracing, logging, metrics
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, handlers.Services{
		Documents:  docSvc,
		Processing: processingSvc,
		Query:      querySvc,
		Portfolios: portfolioSvc,
		Feedback:   feedbackSvc,
		Batch:      runner,
	})

	// Swagger metadata follows the configured public host
	docs.SwaggerInfo.Host = cfg.AppHost
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	if i := strings.Index(cfg.AppHost, "://"); i >= 0 {
		docs.SwaggerInfo.Host = cfg.AppHost[i+3:]
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logx.Info("shutting_down", map[string]any{"component": "main"})

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Error("server_shutdown_failed", err, map[string]any{"component": "main"})
	}

	// Let an in-flight batch job stop at its next item boundary
	runner.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logx.Error("tracing_shutdown_failed", err, map[string]any{"component": "main"})
	}
}
