package utils

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// variables may come from docker compose or the system instead
		slog.Info("utils: .env file not found, using system environment variables")
	}
}
