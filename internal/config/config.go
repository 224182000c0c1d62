package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// MailConfig holds SMTP settings for alert delivery.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // Sender address, e.g. "Presyo <alerts@presyo.ph>"
	Sandbox  bool   // When true, emails are logged instead of sent
}

// ImporterConfig holds price bulletin source settings.
type ImporterConfig struct {
	BulletinURL string // HTML bulletin page
	PDFUrl      string // PDF price index, optional
}

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Admin auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Mail
	Mail MailConfig

	// Price-check job
	CheckerEnabled  bool
	CheckerSchedule string        // Cron expression (e.g., "*/30 * * * *")
	CheckerTimeout  time.Duration // Timeout for a complete alert pass

	// Bulletin importer
	ImporterEnabled  bool
	ImporterSchedule string
	ImporterTimeout  time.Duration
	Importer         ImporterConfig
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  env,

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/presyo?sslmode=disable"),

		// Admin auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Mail
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("MAIL_FROM", "Presyo <alerts@presyo.ph>"),
			Sandbox:  getBoolEnv("MAIL_SANDBOX", env != "production"),
		},

		// Price-check job
		CheckerEnabled:  getBoolEnv("CHECKER_ENABLED", true),
		CheckerSchedule: getEnv("CHECKER_SCHEDULE", "*/30 * * * *"), // Default: every 30 minutes
		CheckerTimeout:  getDurationEnv("CHECKER_TIMEOUT", 5*time.Minute),

		// Bulletin importer
		ImporterEnabled:  getBoolEnv("IMPORTER_ENABLED", false),
		ImporterSchedule: getEnv("IMPORTER_SCHEDULE", "0 6 * * *"), // Default: daily at 06:00
		ImporterTimeout:  getDurationEnv("IMPORTER_TIMEOUT", 10*time.Minute),
		Importer: ImporterConfig{
			BulletinURL: os.Getenv("BULLETIN_URL"),
			PDFUrl:      os.Getenv("BULLETIN_PDF_URL"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
