package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB
}

var AppConfig *Config

// InitDB opens the PostgreSQL connection from environment variables.
// DATABASE_URL wins when set; otherwise the connection string is built
// from the DB_* variables with local development defaults.
func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := envOr("DB_NAME", "duckiki")
		sslmode := envOr("DB_SSLMODE", "disable")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", host, port, user, dbname, sslmode)
		if password != "" {
			psqlInfo += " password=" + password
		}
		log.Printf("Connecting to database %s at %s:%s", dbname, host, port)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}

	AppConfig = &Config{DB: db}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
