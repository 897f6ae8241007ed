// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (delivery attempt records)
	PostgresURI string

	// Auth
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string

	// Twilio (SMS channel)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// SendGrid (email channel)
	SendgridAPIKey      string
	SendgridSenderEmail string

	// Google OAuth / FCM (push channel)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	FCMProjectID       string

	// Dispatcher
	WorkerCount  int
	QueueSize    int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightstatus"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		SendgridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		SendgridSenderEmail: getEnv("SENDGRID_SENDER_EMAIL", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),

		WorkerCount:  getEnvAsInt("DISPATCH_WORKERS", 4),
		QueueSize:    getEnvAsInt("DISPATCH_QUEUE_SIZE", 256),
		MaxAttempts:  getEnvAsInt("DISPATCH_MAX_ATTEMPTS", 3),
		RetryBackoff: time.Duration(getEnvAsInt("DISPATCH_RETRY_BACKOFF_MS", 500)) * time.Millisecond,
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if config.AdminUsername == "" || config.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
