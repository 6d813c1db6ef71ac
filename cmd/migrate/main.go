package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/chenmq77/duckiki/app/config"
	"github.com/chenmq77/duckiki/app/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Schema is up to date")
}
