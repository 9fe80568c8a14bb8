package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL string // Required: public origin invite links are built on

	Issuer       string        // Optional: issuer claim for session tokens (default: clinicd)
	SessionTTL   time.Duration // Optional: owner session token lifetime (default: 1h)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./clinic.db)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)

	MailEndpoint string // Optional: invite mail provider URL; log-only delivery when empty
	MailAPIKey   string // Optional: bearer key for the mail provider

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		BaseURL:              os.Getenv("CLINICD_BASE_URL"),
		Issuer:               getEnvOrDefault("CLINICD_ISSUER", "clinicd"),
		SessionTTL:           getEnvDurationOrDefault("CLINICD_SESSION_TTL", time.Hour),
		DatabaseFile:         getEnvOrDefault("CLINICD_DATABASE_FILE", "clinic.db"),
		PepperFile:           getEnvOrDefault("CLINICD_PEPPER_FILE", "pepper"),
		MailEndpoint:         os.Getenv("CLINICD_MAIL_ENDPOINT"),
		MailAPIKey:           os.Getenv("CLINICD_MAIL_API_KEY"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.BaseURL == "" {
		// Invite links still need an origin in local development.
		cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
}

// EchoInviteLink reports whether create-invite responses should carry the raw
// invite link. Production relies on mail delivery alone.
func (c Config) EchoInviteLink() bool {
	return c.Env != "prod"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
