package contracts

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/database"
	"github.com/chenmq77/duckiki/app/services"
)

func SetupContractsRoutes(app *fiber.App, db *sql.DB) {
	h := &handlers{contracts: services.NewContractService(database.NewStore(db))}

	api := app.Group("/api/contracts")
	api.Get("/", h.GetContractsAPI)
	api.Post("/", h.CreateContractAPI)
	api.Get("/:id", h.GetContractAPI)
	api.Put("/:id", h.UpdateContractAPI)
	api.Delete("/:id", h.DeleteContractAPI)
	api.Put("/:id/charges/:chargeId", h.UpdateChargeAPI)
}
