package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Services  ServicesConfig
	Reconcile ReconcileConfig
	Admin     AdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// ServicesConfig holds the base URLs of the external classification and
// prediction services.
type ServicesConfig struct {
	ClassifierURL string // CLASSIFIER_URL
	PredictorURL  string // PREDICTOR_URL
}

// ReconcileConfig holds the background reconciliation settings.
type ReconcileConfig struct {
	WorkerIntervalSeconds int // RECONCILE_WORKER_INTERVAL_SECONDS (0 = default 1h)
}

// AdminConfig holds admin authentication configuration. PasswordHash is a
// bcrypt hash; plaintext is never configured.
type AdminConfig struct {
	Username         string // ADMIN_USERNAME
	PasswordHash     string // ADMIN_PASSWORD_HASH
	JWTSecret        string // JWT_SECRET
	TokenExpiryHours int    // ADMIN_TOKEN_EXPIRY_HOURS
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "govmadad"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		Services: ServicesConfig{
			ClassifierURL: getEnv("CLASSIFIER_URL", "http://localhost:5000"),
			PredictorURL:  getEnv("PREDICTOR_URL", "http://localhost:5000"),
		},
		Reconcile: ReconcileConfig{
			WorkerIntervalSeconds: getEnvInt("RECONCILE_WORKER_INTERVAL_SECONDS", 0),
		},
		Admin: AdminConfig{
			Username:         getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash:     os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:        os.Getenv("JWT_SECRET"),
			TokenExpiryHours: getEnvInt("ADMIN_TOKEN_EXPIRY_HOURS", 12),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
