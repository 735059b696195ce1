package handler

import (
	"github.com/gofiber/fiber/v2"

	"stmtapi/internal/service"
)

// ListPortfolios handles GET /portfolios with limit & offset.
func ListPortfolios(svc service.PortfolioService) fiber.Handler {
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

// GetPortfolio handles GET /portfolios/:id: the summary with top holdings
// and currency breakdown.
func GetPortfolio(svc service.PortfolioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return writeValidationError(c, err)
		}
		sum, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sum)
	}
}
