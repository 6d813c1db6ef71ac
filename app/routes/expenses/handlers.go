package expenses

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/models"
	"github.com/chenmq77/duckiki/app/services"
)

type handlers struct {
	expenses  *services.ExpenseService
	contracts *services.ContractService
}

type expenseRequest struct {
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
}

type expenseUpdateRequest struct {
	Category *string  `json:"category"`
	Note     *string  `json:"note"`
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
}

type convertRequest struct {
	PeriodAmount float64 `json:"period_amount"`
	PeriodType   string  `json:"period_type"`
	DayOfWeek    *int    `json:"day_of_week"`
	DayOfMonth   *int    `json:"day_of_month"`
	EndDate      string  `json:"end_date"`
}

func (h *handlers) GetExpensesAPI(c *fiber.Ctx) error {
	expenses, err := h.expenses.List()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(expenses)
}

func (h *handlers) GetExpenseAPI(c *fiber.Ctx) error {
	expense, err := h.expenses.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(expense)
}

func (h *handlers) CreateExpenseAPI(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		return errorResponse(c, err)
	}

	expense, err := h.expenses.Create(services.ExpenseInput{
		Type:     req.Type,
		Category: req.Category,
		Currency: req.Currency,
		Note:     req.Note,
		Amount:   req.Amount,
		Date:     date,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

func (h *handlers) UpdateExpenseAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	var req expenseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	upd := services.ExpenseUpdate{
		Category: req.Category,
		Note:     req.Note,
		Amount:   req.Amount,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date, "date")
		if err != nil {
			return errorResponse(c, err)
		}
		upd.Date = &date
	}

	expense, err := h.expenses.Update(id, upd)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(expense)
}

func (h *handlers) DeleteExpenseAPI(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) ConvertToInstallmentAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	var req convertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.contracts.ConvertToInstallment(id, services.ConvertInput{
		PeriodAmount: req.PeriodAmount,
		PeriodType:   models.PeriodType(req.PeriodType),
		DayOfWeek:    req.DayOfWeek,
		DayOfMonth:   req.DayOfMonth,
		EndDate:      endDate,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
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
