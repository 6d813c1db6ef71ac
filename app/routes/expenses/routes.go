package expenses

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/database"
	"github.com/chenmq77/duckiki/app/services"
)

func SetupExpensesRoutes(app *fiber.App, db *sql.DB) {
	store := database.NewStore(db)
	h := &handlers{
		expenses:  services.NewExpenseService(store),
		contracts: services.NewContractService(store),
	}

	api := app.Group("/api/expenses")
	api.Get("/", h.GetExpensesAPI)
	api.Post("/", h.CreateExpenseAPI)
	api.Get("/:id", h.GetExpenseAPI)
	api.Put("/:id", h.UpdateExpenseAPI)
	api.Delete("/:id", h.DeleteExpenseAPI)
	api.Post("/:id/convert-to-installment", h.ConvertToInstallmentAPI)
}
