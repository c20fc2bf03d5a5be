package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are tried in order. Values already present in the process
// environment are never overridden, so .env.local wins over .env.
var envFiles = []string{".env.local", ".env"}

func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment file", "path", path)
		}
	}
}
