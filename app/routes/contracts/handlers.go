package contracts

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/models"
	"github.com/chenmq77/duckiki/app/services"
)

type handlers struct {
	contracts *services.ContractService
}

type contractRequest struct {
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	Currency     string  `json:"currency"`
	Note         string  `json:"note"`
	TotalAmount  float64 `json:"total_amount"`
	PeriodAmount float64 `json:"period_amount"`
	PeriodType   string  `json:"period_type"`
	DayOfWeek    *int    `json:"day_of_week"`
	DayOfMonth   *int    `json:"day_of_month"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

type contractUpdateRequest struct {
	TotalAmount  *float64 `json:"total_amount"`
	PeriodAmount *float64 `json:"period_amount"`
	PeriodType   *string  `json:"period_type"`
	DayOfWeek    *int     `json:"day_of_week"`
	DayOfMonth   *int     `json:"day_of_month"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
}

type chargeUpdateRequest struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
}

func (h *handlers) GetContractsAPI(c *fiber.Ctx) error {
	contracts, err := h.contracts.List()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(contracts)
}

func (h *handlers) GetContractAPI(c *fiber.Ctx) error {
	detail, err := h.contracts.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(detail)
}

func (h *handlers) CreateContractAPI(c *fiber.Ctx) error {
	var req contractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return errorResponse(c, err)
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.contracts.Create(services.ContractInput{
		Type:         req.Type,
		Category:     req.Category,
		Currency:     req.Currency,
		Note:         req.Note,
		TotalAmount:  req.TotalAmount,
		PeriodAmount: req.PeriodAmount,
		PeriodType:   models.PeriodType(req.PeriodType),
		DayOfWeek:    req.DayOfWeek,
		DayOfMonth:   req.DayOfMonth,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *handlers) UpdateContractAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	var req contractUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	upd := services.ContractUpdate{
		TotalAmount:  req.TotalAmount,
		PeriodAmount: req.PeriodAmount,
		DayOfWeek:    req.DayOfWeek,
		DayOfMonth:   req.DayOfMonth,
	}
	if req.PeriodType != nil {
		periodType := models.PeriodType(*req.PeriodType)
		upd.PeriodType = &periodType
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate, "start_date")
		if err != nil {
			return errorResponse(c, err)
		}
		upd.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate, "end_date")
		if err != nil {
			return errorResponse(c, err)
		}
		upd.EndDate = &endDate
	}

	result, err := h.contracts.Update(id, upd)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (h *handlers) DeleteContractAPI(c *fiber.Ctx) error {
	if err := h.contracts.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) UpdateChargeAPI(c *fiber.Ctx) error {
	var req chargeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	upd := services.ChargeUpdate{Amount: req.Amount}
	if req.Status != nil {
		status := models.ChargeStatus(*req.Status)
		upd.Status = &status
	}

	charge, err := h.contracts.UpdateCharge(c.Params("id"), c.Params("chargeId"), upd)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(charge)
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, services.Validationf("%s is required", field)
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, services.Validationf("%s must be formatted as YYYY-MM-DD", field)
	}
	return date, nil
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
