package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"stmtapi/internal/batch"
	"stmtapi/internal/service"
)

// Services bundles everything the route table depends on.
type Services struct {
	Documents  service.DocumentService
	Processing service.ProcessingService
	Query      service.QueryService
	Portfolios service.PortfolioService
	Feedback   service.FeedbackService
	Batch      batch.Service
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they parse, delegate and render.
func RegisterRoutes(app *fiber.App, db *sql.DB, s Services) {
	// API documentation
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})

	// Probes
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Documents
	app.Get("/documents", ListDocuments(s.Documents))
	app.Post("/documents", UploadDocument(s.Documents))
	app.Get("/documents/:id", GetDocument(s.Documents))
	app.Delete("/documents/:id", DeleteDocument(s.Documents))
	app.Get("/documents/:id/download", DownloadDocument(s.Documents))
	app.Get("/documents/:id/securities", GetDocumentSecurities(s.Documents))
	app.Post("/documents/:id/process", ProcessDocument(s.Processing))
	app.Get("/documents/:id/feedback", ListDocumentFeedback(s.Feedback))

	// Query agents
	app.Post("/query/answer/:id", AnswerQuestion(s.Query))
	app.Post("/query/compare", CompareDocuments(s.Query))

	// Batch jobs
	app.Post("/batch/job", CreateBatchJob(s.Batch))
	app.Get("/batch/jobs", ListBatchJobs(s.Batch))
	app.Get("/batch/job/:id", GetBatchJob(s.Batch))
	app.Delete("/batch/job/:id", CancelBatchJob(s.Batch))

	// Portfolios
	app.Get("/portfolios", ListPortfolios(s.Portfolios))
	app.Get("/portfolios/:id", GetPortfolio(s.Portfolios))

	// Feedback
	app.Post("/feedback", CreateFeedback(s.Feedback))
}
