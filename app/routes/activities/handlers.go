package activities

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/models"
	"github.com/chenmq77/duckiki/app/services"
)

type handlers struct {
	activities *services.ActivityService
}

type activityRequest struct {
	Type     string `json:"type"`
	Date     string `json:"date"`
	Distance int    `json:"distance"`
	Note     string `json:"note"`
}

func (h *handlers) GetActivitiesAPI(c *fiber.Ctx) error {
	activities, err := h.activities.List()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(activities)
}

func (h *handlers) CreateActivityAPI(c *fiber.Ctx) error {
	var req activityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date is required"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be formatted as YYYY-MM-DD"})
	}

	activity, err := h.activities.Create(services.ActivityInput{
		Type:     models.ActivityType(req.Type),
		Date:     date,
		Distance: req.Distance,
		Note:     req.Note,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (h *handlers) DeleteActivityAPI(c *fiber.Ctx) error {
	if err := h.activities.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
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
