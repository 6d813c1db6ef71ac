package activities

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/chenmq77/duckiki/app/database"
	"github.com/chenmq77/duckiki/app/services"
)

func SetupActivitiesRoutes(app *fiber.App, db *sql.DB) {
	h := &handlers{activities: services.NewActivityService(database.NewStore(db))}

	api := app.Group("/api/activities")
	api.Get("/", h.GetActivitiesAPI)
	api.Post("/", h.CreateActivityAPI)
	api.Delete("/:id", h.DeleteActivityAPI)
}
