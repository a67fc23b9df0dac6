package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	JWTSecret   string
	Database    DatabaseConfig
	RemoteAPI   RemoteAPIConfig
	Agenda      AgendaConfig
}

// DatabaseConfig holds database connection details for the local mirror
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RemoteAPIConfig holds the upstream appointments API location
type RemoteAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// AgendaConfig holds scheduling defaults
type AgendaConfig struct {
	DefaultDurationMinutes int
	OpeningTime            string
	ClosingTime            string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "agenda"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	remoteTimeout, err := strconv.Atoi(getEnv("REMOTE_API_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_API_TIMEOUT_SECONDS: %w", err)
	}

	defaultDuration, err := strconv.Atoi(getEnv("AGENDA_DEFAULT_DURATION_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGENDA_DEFAULT_DURATION_MINUTES: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "default_jwt_secret"),
		Database:    dbConfig,
		RemoteAPI: RemoteAPIConfig{
			BaseURL:        getEnv("REMOTE_API_URL", "http://localhost:3000"),
			TimeoutSeconds: remoteTimeout,
		},
		Agenda: AgendaConfig{
			DefaultDurationMinutes: defaultDuration,
			OpeningTime:            getEnv("AGENDA_OPENING_TIME", "08:00"),
			ClosingTime:            getEnv("AGENDA_CLOSING_TIME", "18:00"),
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
