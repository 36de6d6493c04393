package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Auth contains credential-handling configuration
	Auth AuthConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Retention contains login-attempt retention settings
	Retention RetentionConfig
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
	// Environment selects logger behavior ("production" or "development")
	Environment string
}

// AuthConfig contains credential-handling settings
type AuthConfig struct {
	// HashAlgorithm selects the digest scheme for new passwords
	// ("argon2id" or "bcrypt")
	HashAlgorithm string
	// BcryptCost applies when HashAlgorithm is "bcrypt"
	BcryptCost int
	// StoreTimeout bounds each credential-store access
	StoreTimeout time.Duration
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string
	// Port is the database server port
	Port int
	// User is the database username
	User string
	// Password is the database password
	Password string
	// DBName is the database name
	DBName string
	// SSLMode is the SSL mode for the database connection
	SSLMode string
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// RetentionConfig contains login-attempt retention settings
type RetentionConfig struct {
	// LoginAttemptMaxAge is how long attempts are kept before pruning
	LoginAttemptMaxAge time.Duration
	// Schedule is the cron expression for the pruning job
	Schedule string
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port:        getEnvOrDefault("API_PORT", "8080"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "seminar_booking"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Auth = AuthConfig{
		HashAlgorithm: getEnvOrDefault("HASH_ALGORITHM", "argon2id"),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 0),
		StoreTimeout:  getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
	}
	c.Retention = RetentionConfig{
		LoginAttemptMaxAge: getEnvAsDuration("LOGIN_ATTEMPT_MAX_AGE", 90*24*time.Hour),
		Schedule:           getEnvOrDefault("RETENTION_SCHEDULE", "0 3 * * *"),
	}

	if c.Auth.HashAlgorithm != "argon2id" && c.Auth.HashAlgorithm != "bcrypt" {
		return fmt.Errorf("unsupported HASH_ALGORITHM: %q", c.Auth.HashAlgorithm)
	}

	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsDuration retrieves an environment variable and parses it as a duration
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
