package roi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/services"
)

type handlers struct {
	roi *services.ROIService
}

type marketPriceRequest struct {
	Price float64 `json:"price"`
}

func (h *handlers) GetSummaryAPI(c *fiber.Ctx) error {
	summary, err := h.roi.Summary()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(summary)
}

func (h *handlers) UpdateMarketPriceAPI(c *fiber.Ctx) error {
	var req marketPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.roi.SetMarketReferencePrice(req.Price); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"market_reference_price": req.Price})
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
