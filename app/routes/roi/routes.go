package roi

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/database"
	"github.com/chenmq77/duckiki/app/services"
)

func SetupROIRoutes(app *fiber.App, db *sql.DB) {
	h := &handlers{roi: services.NewROIService(database.NewStore(db))}

	api := app.Group("/api/roi")
	api.Get("/summary", h.GetSummaryAPI)
	api.Put("/market-price", h.UpdateMarketPriceAPI)
}
