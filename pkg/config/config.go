package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Calendar provider names
const (
	CalendarProviderNylas = "nylas"
	CalendarProviderMock  = "mock"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Calendar    CalendarConfig
	Booking     BookingConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	AllowedOrigins  string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CalendarConfig holds external calendar provider configuration
type CalendarConfig struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	MaxAttempts       int
	AllowMockFallback bool
	AllowMissingGrant bool
}

// BookingConfig holds settings of the public booking pages
type BookingConfig struct {
	DefaultTimezone string
	PublicBaseURL   string
	WindowCacheTTL  time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Calendar: CalendarConfig{
			Provider:          strings.ToLower(getEnv("CALENDAR_PROVIDER", CalendarProviderNylas)),
			APIKey:            getEnv("NYLAS_API_KEY", ""),
			BaseURL:           getEnv("NYLAS_API_URI", "https://api.us.nylas.com"),
			Timeout:           getEnvAsDuration("CALENDAR_TIMEOUT", 10*time.Second),
			MaxAttempts:       getEnvAsInt("CALENDAR_MAX_ATTEMPTS", 3),
			AllowMockFallback: getEnvAsBool("CALENDAR_ALLOW_MOCK_FALLBACK", false),
			AllowMissingGrant: getEnvAsBool("CALENDAR_ALLOW_MISSING_GRANT", false),
		},
		Booking: BookingConfig{
			DefaultTimezone: getEnv("BOOKING_DEFAULT_TIMEZONE", "UTC"),
			PublicBaseURL:   strings.TrimRight(getEnv("BOOKING_PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
			WindowCacheTTL:  getEnvAsDuration("BOOKING_WINDOW_CACHE_TTL", 5*time.Minute),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "booking-availability"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Calendar.Provider {
	case CalendarProviderNylas, CalendarProviderMock:
	default:
		return fmt.Errorf("unsupported calendar provider %q", c.Calendar.Provider)
	}

	if c.Calendar.Provider == CalendarProviderNylas && c.Calendar.APIKey == "" && c.Environment != "development" {
		return fmt.Errorf("NYLAS_API_KEY is required when CALENDAR_PROVIDER=nylas outside development")
	}

	if c.Calendar.MaxAttempts < 1 {
		return fmt.Errorf("CALENDAR_MAX_ATTEMPTS must be at least 1")
	}

	if _, err := time.LoadLocation(c.Booking.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid BOOKING_DEFAULT_TIMEZONE %q: %w", c.Booking.DefaultTimezone, err)
	}

	return nil
}

// Location returns the default booking time zone
func (c *BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
