package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	SQLite     SQLiteConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the attendance tracker policy values.
// The present/half-day classification thresholds are configuration,
// not constants baked into the grid builder.
type AttendanceConfig struct {
	// Store selects the session store driver: postgres, sqlite or memory.
	Store string

	// FullDayMinutes is the minimum frozen work duration counted as a
	// full present day. HalfDayMinutes is the floor for half-day; durations
	// below it count as absent.
	FullDayMinutes int
	HalfDayMinutes int

	// TickInterval is the cadence of the elapsed-duration refresh while a
	// session is open. Any sub-minute cadence is acceptable.
	TickInterval time.Duration

	// HistoryDays is the default window for the recent-history read model.
	HistoryDays int
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workly-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.SQLite = SQLiteConfig{
		Path: getEnv("SQLITE_PATH", "hrms.db"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	fullDay, err := strconv.Atoi(getEnv("ATTENDANCE_FULL_DAY_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_FULL_DAY_MINUTES: %w", err)
	}

	halfDay, err := strconv.Atoi(getEnv("ATTENDANCE_HALF_DAY_MINUTES", "240"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_MINUTES: %w", err)
	}

	tick, err := time.ParseDuration(getEnv("ATTENDANCE_TICK_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TICK_INTERVAL: %w", err)
	}

	historyDays, err := strconv.Atoi(getEnv("ATTENDANCE_HISTORY_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HISTORY_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Store:          getEnv("ATTENDANCE_STORE", "postgres"),
		FullDayMinutes: fullDay,
		HalfDayMinutes: halfDay,
		TickInterval:   tick,
		HistoryDays:    historyDays,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.Attendance.Store {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported ATTENDANCE_STORE: %s", c.Attendance.Store)
	}
	if c.Attendance.Store == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Attendance.HalfDayMinutes <= 0 || c.Attendance.FullDayMinutes <= c.Attendance.HalfDayMinutes {
		return fmt.Errorf("attendance thresholds must satisfy 0 < half-day < full-day")
	}
	if c.Attendance.TickInterval <= 0 || c.Attendance.TickInterval > time.Minute {
		return fmt.Errorf("ATTENDANCE_TICK_INTERVAL must be positive and sub-minute")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
