package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/chenmq77/duckiki/app/config"
	"github.com/chenmq77/duckiki/app/database"
	"github.com/chenmq77/duckiki/app/routes/activities"
	"github.com/chenmq77/duckiki/app/routes/contracts"
	"github.com/chenmq77/duckiki/app/routes/expenses"
	"github.com/chenmq77/duckiki/app/routes/roi"
)

// errorHandler answers every unhandled route error as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	db := config.GetDB()

	// Setup expenses routes
	expenses.SetupExpensesRoutes(app, db)

	// Setup activities routes
	activities.SetupActivitiesRoutes(app, db)

	// Setup contracts routes
	contracts.SetupContractsRoutes(app, db)

	// Setup ROI routes
	roi.SetupROIRoutes(app, db)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
