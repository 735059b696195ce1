package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stmtapi/internal/batch"
	"stmtapi/internal/model"
)

type createBatchJobRequest struct {
	Type        string   `json:"type"`
	DocumentIDs []string `json:"document_ids"`
}

// CreateBatchJob handles POST /batch/job: creates and starts a job.
func CreateBatchJob(svc batch.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createBatchJobRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.Type == "" {
			req.Type = string(model.BatchJobReprocess)
		}
		for _, id := range req.DocumentIDs {
			if _, err := uuid.Parse(id); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "document_ids must be valid ids")
			}
		}

		job, err := svc.Submit(c.UserContext(), model.BatchJobType(req.Type), req.DocumentIDs)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(job)
	}
}

// GetBatchJob handles GET /batch/job/:id: status and progress.
func GetBatchJob(svc batch.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		job, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(job)
	}
}

// ListBatchJobs handles GET /batch/jobs with limit & offset.
func ListBatchJobs(svc batch.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CancelBatchJob handles DELETE /batch/job/:id. Cancelling a job that has
// already finished returns 409.
func CancelBatchJob(svc batch.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		ok, err := svc.Cancel(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if !ok {
			return writeError(c, fiber.StatusConflict, "JOB_FINISHED", "job already finished")
		}
		return c.JSON(fiber.Map{"status": "cancelled"})
	}
}
