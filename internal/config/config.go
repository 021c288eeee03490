package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/utils"
)

const defaultTokenTTL = 24 * time.Hour

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	DBUrl          string
	MigrationsPath string

	JWTSecret []byte
	TokenTTL  time.Duration

	// Audit sync cron spec; empty disables the pass.
	AuditSyncSchedule string

	// Notification credentials. When Twilio or SendGrid settings are
	// missing, notifications fall back to the noop sender.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioSMSFrom    string
	SendgridAPIKey   string
	EmailFrom        string
	EmailFromName    string

	// Seed credentials for the default superuser account.
	SeedAdminUsername string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// LoadConfig reads the environment, after merging a local .env file when one
// exists. Missing required settings are fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; using process environment")
	}

	cfg := &Config{
		AppName:           constants.AppName,
		AppPort:           mustEnv("APP_PORT"),
		AppUrl:            os.Getenv("APP_URL"),
		DBUrl:             mustEnv("DATABASE_URL"),
		MigrationsPath:    envOr("MIGRATIONS_PATH", "file://migrations"),
		JWTSecret:         []byte(mustEnv("JWT_SECRET")),
		TokenTTL:          defaultTokenTTL,
		AuditSyncSchedule: envOr("AUDIT_SYNC_SCHEDULE", "*/5 * * * *"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioSMSFrom:    os.Getenv("TWILIO_SMS_FROM"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		EmailFromName:    envOr("EMAIL_FROM_NAME", constants.AppName),

		SeedAdminUsername: envOr("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminEmail:    envOr("SEED_ADMIN_EMAIL", "admin@localhost"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Invalid TOKEN_TTL")
		}
		cfg.TokenTTL = ttl
	}
	return cfg
}

// NotificationsConfigured reports whether both Twilio and SendGrid are set up.
func (c *Config) NotificationsConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioSMSFrom != "" &&
		c.SendgridAPIKey != "" && c.EmailFrom != ""
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
