package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string // Issuer claim on service and session tokens (default: mailward)
	APISecret string // Required: HS256 shared secret for service and session tokens
	BaseURL   string // Public base URL action links point at (default: http://localhost:8080)

	DatabaseDriver string        // Database driver (sqlite, postgres) (default: sqlite)
	DatabaseFile   string        // Path to SQLite database file (default: ./mailward.db)
	DatabaseURL    string        // Postgres DSN, required when driver is postgres
	PepperFile     string        // Path to file containing pepper for password hashing (default: ./pepper)
	SessionTTL     time.Duration // Magic link session lifetime (default: 1h)
	DefaultLocale  string        // Locale for subjects created without one (default: en)

	// Per-kind validity windows; zero keeps the built-in default.
	ConfirmationTTL time.Duration
	InvitationTTL   time.Duration
	ResetTTL        time.Duration
	MagicLinkTTL    time.Duration

	MailProvider  string // Mail provider (smtp, resend, log) (default: log)
	MailFrom      string // From address on outgoing mail
	MailFromName  string // Display name on outgoing mail
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPTLS       bool
	ResendAPIKey  string
	MailQueueSize int // Buffered dispatcher queue size (default: 256)

	Env                   string        // Environment (dev, staging, prod) (default: dev)
	LogLevel              string        // Log level (debug, info, warn, error) (default: info)
	LogFormat             string        // Log format (json, text) (default: json)
	Port                  int           // HTTP server port (default: 8080)
	ShutdownGracePeriod   time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval  time.Duration // Sweep cadence for stale rows (default: 1h)
	HousekeepingRetention time.Duration // How long consumed/expired rows are kept (default: 24h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("MAILWARD_ISSUER", "mailward"),
		APISecret: os.Getenv("MAILWARD_API_SECRET"),
		BaseURL:   getEnvOrDefault("MAILWARD_BASE_URL", "http://localhost:8080"),

		DatabaseDriver: getEnvOrDefault("MAILWARD_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("MAILWARD_DATABASE_FILE", "mailward.db"),
		DatabaseURL:    os.Getenv("MAILWARD_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("MAILWARD_PEPPER_FILE", "pepper"),
		SessionTTL:     getEnvDurationOrDefault("MAILWARD_SESSION_TTL", time.Hour),
		DefaultLocale:  getEnvOrDefault("MAILWARD_DEFAULT_LOCALE", "en"),

		ConfirmationTTL: getEnvDurationOrDefault("MAILWARD_CONFIRMATION_TTL", 0),
		InvitationTTL:   getEnvDurationOrDefault("MAILWARD_INVITATION_TTL", 0),
		ResetTTL:        getEnvDurationOrDefault("MAILWARD_RESET_TTL", 0),
		MagicLinkTTL:    getEnvDurationOrDefault("MAILWARD_MAGIC_TTL", 0),

		MailProvider:  getEnvOrDefault("MAIL_PROVIDER", "log"),
		MailFrom:      getEnvOrDefault("MAIL_FROM", "no-reply@localhost"),
		MailFromName:  getEnvOrDefault("MAIL_FROM_NAME", "Mailward"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPTLS:       getEnvBoolOrDefault("SMTP_TLS", true),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		MailQueueSize: getEnvIntOrDefault("MAIL_QUEUE_SIZE", 256),

		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval:  getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		HousekeepingRetention: getEnvDurationOrDefault("HOUSEKEEPING_RETENTION", 24*time.Hour),
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
