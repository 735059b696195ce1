package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stmtapi/internal/service"
)

type createFeedbackRequest struct {
	DocumentID string `json:"document_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// CreateFeedback handles POST /feedback with body {document_id, rating, comment}.
func CreateFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFeedbackRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if _, err := uuid.Parse(req.DocumentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "document_id must be a valid id")
		}

		fb, err := svc.Create(c.UserContext(), req.DocumentID, req.Rating, req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fb)
	}
}

// ListDocumentFeedback handles GET /documents/:id/feedback.
func ListDocumentFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		items, err := svc.ListByDocument(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}
