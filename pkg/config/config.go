package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	StorageBackend string // "sqlite" or "jsonfile"
	DatabaseURL    string
	DataFile       string
	AppEnv         string
	BaseURL        string
	SessionSecret  string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:           getEnv("PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:linkforge.db"),
		DataFile:       getEnv("DATA_FILE", "linkforge.json"),
		AppEnv:         getEnv("APP_ENV", "local"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret:  getEnv("SESSION_SECRET", "linkforge-dev-secret"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
