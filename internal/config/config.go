package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort        int
	MongoURI          string
	DatabaseName      string
	StripeSecretKey   string
	AllowedOrigin     string
	ReconcileSchedule string // standard cron expression for the settlement sweep
	LogLevel          string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Best-effort; real deployments inject the environment directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "5000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:        port,
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:      getEnv("MONGO_DB", "parcelDB"),
		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "*/15 * * * *"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
