package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stmtapi/internal/agent"
	"stmtapi/internal/service"
)

type answerRequest struct {
	Question string `json:"question"`
}

type compareRequest struct {
	DocumentA string `json:"document_a"`
	DocumentB string `json:"document_b"`
}

// AnswerQuestion handles POST /query/answer/:id with body {question}.
func AnswerQuestion(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return writeValidationError(c, err)
		}

		var req answerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if strings.TrimSpace(req.Question) == "" {
			return writeError(c, fiber.StatusBadRequest, "QUESTION_REQUIRED", "question is required")
		}

		ans, err := svc.Answer(c.UserContext(), id, req.Question)
		if err != nil {
			if errors.Is(err, agent.ErrNoHoldings) {
				return writeError(c, fiber.StatusConflict, "NO_HOLDINGS", "document has no extracted holdings")
			}
			if errors.Is(err, agent.ErrLLMUnavailable) {
				return writeError(c, fiber.StatusServiceUnavailable, "LLM_UNAVAILABLE", "query engine is not configured")
			}
			return writeServiceError(c, err)
		}
		return c.JSON(ans)
	}
}

// CompareDocuments handles POST /query/compare with body {document_a, document_b}.
func CompareDocuments(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req compareRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if _, err := uuid.Parse(req.DocumentA); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "document_a must be a valid id")
		}
		if _, err := uuid.Parse(req.DocumentB); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "document_b must be a valid id")
		}
		if req.DocumentA == req.DocumentB {
			return writeError(c, fiber.StatusBadRequest, "SAME_DOCUMENT", "cannot compare a document with itself")
		}

		cmp, err := svc.Compare(c.UserContext(), req.DocumentA, req.DocumentB)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cmp)
	}
}
