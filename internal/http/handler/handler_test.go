package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"stmtapi/internal/agent"
	"stmtapi/internal/batch"
	batchMocks "stmtapi/internal/batch/mocks"
	"stmtapi/internal/model"
	"stmtapi/internal/service"
	serviceMocks "stmtapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.New().String(), Filename: "statement.pdf"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
		mockSvc.AssertNotCalled(t, "List", mock.Anything, 0, 0)
	})

	t.Run("invalid offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents?offset=xyz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_OFFSET", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "statement.pdf")
		part.Write([]byte("%PDF-1.7"))
		writer.Close()

		expectedDoc := &model.Document{ID: uuid.New().String(), Filename: "statement.pdf"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "statement.pdf", mock.Anything, mock.Anything).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "statement.pdf")
		part.Write([]byte("%PDF-1.7"))
		writer.Close()

		mockSvc.On("Upload", mock.Anything, mock.Anything, "statement.pdf", mock.Anything, mock.Anything).Return(nil, errors.New("upload failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expectedDoc := &model.Document{ID: id, Filename: "statement.pdf"}
		mockSvc.On("Get", mock.Anything, id).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, "")
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/:id", DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/download", DownloadDocument(mockSvc))

	id := uuid.New().String()
	mockSvc.On("DownloadURL", mock.Anything, id).
		Return("https://minio.local/statements/x.pdf?sig=abc", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Contains(t, body["url"], "sig=abc")
	mockSvc.AssertExpectations(t)
}

func TestGetDocumentSecurities(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/securities", GetDocumentSecurities(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Securities", mock.Anything, id).Return([]model.Security{
		{ISIN: "US0378331005", Name: "Apple Inc", Value: 9000},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/securities", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data  []model.Security `json:"data"`
		Total int              `json:"total"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "US0378331005", body.Data[0].ISIN)
}

func TestProcessDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockProcessingService)
	app := fiber.New()
	app.Post("/documents/:id/process", ProcessDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Process", mock.Anything, id).
			Return(&model.Document{ID: id, Status: model.DocumentStatusProcessed}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/process", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.DocumentStatusProcessed, result.Status)
	})

	t.Run("already processing", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Process", mock.Anything, id).Return(nil, service.ErrAlreadyProcessing).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/process", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ALREADY_PROCESSING", res.Error.Code)
	})
}

func TestAnswerQuestion(t *testing.T) {
	mockSvc := new(serviceMocks.MockQueryService)
	app := fiber.New()
	app.Post("/query/answer/:id", AnswerQuestion(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Answer", mock.Anything, id, "what is the total?").
			Return(&model.Answer{DocumentID: id, Answer: "15000 USD", Cached: true}, nil).Once()

		req := jsonRequest(http.MethodPost, "/query/answer/"+id, fiber.Map{"question": "what is the total?"})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var ans model.Answer
		json.NewDecoder(resp.Body).Decode(&ans)
		assert.True(t, ans.Cached)
		assert.Equal(t, "15000 USD", ans.Answer)
	})

	t.Run("missing question", func(t *testing.T) {
		id := uuid.New().String()
		req := jsonRequest(http.MethodPost, "/query/answer/"+id, fiber.Map{"question": "   "})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "QUESTION_REQUIRED", res.Error.Code)
	})

	t.Run("llm not configured", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Answer", mock.Anything, id, "total?").
			Return(nil, agent.ErrLLMUnavailable).Once()

		req := jsonRequest(http.MethodPost, "/query/answer/"+id, fiber.Map{"question": "total?"})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "LLM_UNAVAILABLE", res.Error.Code)
	})
}

func TestCompareDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockQueryService)
	app := fiber.New()
	app.Post("/query/compare", CompareDocuments(mockSvc))

	idA, idB := uuid.New().String(), uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Compare", mock.Anything, idA, idB).
			Return(&model.Comparison{DocumentA: idA, DocumentB: idB, Summary: "little changed"}, nil).Once()

		req := jsonRequest(http.MethodPost, "/query/compare", fiber.Map{"document_a": idA, "document_b": idB})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var cmp model.Comparison
		json.NewDecoder(resp.Body).Decode(&cmp)
		assert.Equal(t, "little changed", cmp.Summary)
	})

	t.Run("same document", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/query/compare", fiber.Map{"document_a": idA, "document_b": idA})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SAME_DOCUMENT", res.Error.Code)
	})

	t.Run("invalid ids", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/query/compare", fiber.Map{"document_a": "nope", "document_b": idB})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBatchJobHandlers(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Post("/batch/job", CreateBatchJob(mockSvc))

		mockSvc.On("Submit", mock.Anything, model.BatchJobReprocess, []string(nil)).
			Return(&model.BatchJob{ID: "job-1", Status: model.BatchStatusPending, Total: 4}, nil).Once()

		req := jsonRequest(http.MethodPost, "/batch/job", fiber.Map{})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		var job model.BatchJob
		json.NewDecoder(resp.Body).Decode(&job)
		assert.Equal(t, "job-1", job.ID)
		assert.Equal(t, 4, job.Total)
	})

	t.Run("create while active", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Post("/batch/job", CreateBatchJob(mockSvc))

		mockSvc.On("Submit", mock.Anything, model.BatchJobReprocess, []string(nil)).
			Return(nil, batch.ErrJobActive).Once()

		req := jsonRequest(http.MethodPost, "/batch/job", fiber.Map{})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "JOB_ACTIVE", res.Error.Code)
	})

	t.Run("get", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Get("/batch/job/:id", GetBatchJob(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.BatchJob{ID: id, Status: model.BatchStatusRunning, Progress: 40}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/batch/job/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var job model.BatchJob
		json.NewDecoder(resp.Body).Decode(&job)
		assert.Equal(t, 40, job.Progress)
	})

	t.Run("get with invalid id", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Get("/batch/job/:id", GetBatchJob(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/batch/job/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, "")
	})

	t.Run("list", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Get("/batch/jobs", ListBatchJobs(mockSvc))

		mockSvc.On("List", mock.Anything, 10, 0).
			Return(&batch.BatchJobListResult{Items: []model.BatchJob{{ID: "job-1"}}, Total: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/batch/jobs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res batch.BatchJobListResult
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("cancel", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Delete("/batch/job/:id", CancelBatchJob(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Cancel", mock.Anything, id).Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/batch/job/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cancel finished job", func(t *testing.T) {
		mockSvc := new(batchMocks.MockService)
		app := fiber.New()
		app.Delete("/batch/job/:id", CancelBatchJob(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Cancel", mock.Anything, id).Return(false, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/batch/job/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "JOB_FINISHED", res.Error.Code)
	})
}

func TestPortfolioHandlers(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockPortfolioService)
		app := fiber.New()
		app.Get("/portfolios", ListPortfolios(mockSvc))

		mockSvc.On("List", mock.Anything, 10, 0).
			Return(&service.PortfolioListResult{Items: []model.Portfolio{{ID: "p-1"}}, Total: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/portfolios", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockPortfolioService)
		app := fiber.New()
		app.Get("/portfolios/:id", GetPortfolio(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.PortfolioSummary{
				Portfolio:  model.Portfolio{ID: id, TotalValue: 28000},
				ByCurrency: map[string]float64{"USD": 28000},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/portfolios/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var sum model.PortfolioSummary
		json.NewDecoder(resp.Body).Decode(&sum)
		assert.Equal(t, 28000.0, sum.Portfolio.TotalValue)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockPortfolioService)
		app := fiber.New()
		app.Get("/portfolios/:id", GetPortfolio(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/portfolios/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFeedbackHandlers(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFeedbackService)
		app := fiber.New()
		app.Post("/feedback", CreateFeedback(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Create", mock.Anything, id, 4, "numbers look right").
			Return(&model.Feedback{ID: "f-1", DocumentID: id, Rating: 4}, nil).Once()

		req := jsonRequest(http.MethodPost, "/feedback", fiber.Map{
			"document_id": id,
			"rating":      4,
			"comment":     "numbers look right",
		})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("invalid rating", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFeedbackService)
		app := fiber.New()
		app.Post("/feedback", CreateFeedback(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Create", mock.Anything, id, 9, "").Return(nil, service.ErrInvalidRating).Once()

		req := jsonRequest(http.MethodPost, "/feedback", fiber.Map{"document_id": id, "rating": 9})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_RATING", res.Error.Code)
	})

	t.Run("list by document", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFeedbackService)
		app := fiber.New()
		app.Get("/documents/:id/feedback", ListDocumentFeedback(mockSvc))

		id := uuid.New().String()
		mockSvc.On("ListByDocument", mock.Anything, id).
			Return([]model.Feedback{{ID: "f-1", Rating: 5}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/feedback", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), `"total":1`)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Documents:  new(serviceMocks.MockDocumentService),
		Processing: new(serviceMocks.MockProcessingService),
		Query:      new(serviceMocks.MockQueryService),
		Portfolios: new(serviceMocks.MockPortfolioService),
		Feedback:   new(serviceMocks.MockFeedbackService),
		Batch:      new(batchMocks.MockService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("docs redirects to swagger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
		assert.Equal(t, "/swagger/index.html", resp.Header.Get("Location"))
	})
}
