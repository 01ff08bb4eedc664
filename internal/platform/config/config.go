package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"symposium/pkg/platform/middleware/metadata"
)

// Side-effect dispatch modes.
const (
	DispatchAwait  = "await"
	DispatchDetach = "detach"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the whole process configuration.
type Config struct {
	Env               string        `env:"APP_ENV" envDefault:"development"`
	Addr              string        `env:"SYMPOSIUM_ADDR" envDefault:":8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DisplayTimezone   string        `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`
	EventCatalogPath  string        `env:"EVENT_CATALOG_PATH"`
	SideEffectMode    string        `env:"SIDE_EFFECT_MODE" envDefault:"detach"`
	SideEffectTimeout time.Duration `env:"SIDE_EFFECT_TIMEOUT" envDefault:"30s"`
	// TrustedProxies are CIDRs or addresses allowed to set X-Forwarded-For.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Database  DatabaseConfig
	Sheets    SheetsConfig
	Email     EmailConfig
	Alert     AlertConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
}

// DatabaseConfig locates the registrations store. An empty URL means the
// store is not configured.
type DatabaseConfig struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	URL    string `env:"DATABASE_URL"`
}

// SheetsConfig holds the service-account credentials for the spreadsheet sink.
type SheetsConfig struct {
	SpreadsheetID       string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	ServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	PrivateKey          string `env:"GOOGLE_PRIVATE_KEY"`
	SheetName           string `env:"GOOGLE_SHEET_NAME" envDefault:"Sheet1"`
}

// EmailConfig configures the transactional email provider.
type EmailConfig struct {
	APIKey         string `env:"EMAIL_API_KEY"`
	APIURL         string `env:"EMAIL_API_URL" envDefault:"https://api.resend.com/emails"`
	From           string `env:"EMAIL_FROM" envDefault:"noreply@example.com"`
	FromName       string `env:"EMAIL_FROM_NAME" envDefault:"Symposium"`
	OrganizerEmail string `env:"ORGANIZER_EMAIL"`
}

// AlertConfig configures the organizer alert stream. No brokers disables it.
type AlertConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"symposium.registrations"`
}

// RedisConfig configures the optional Redis connection used for rate limiting.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// RateLimitConfig bounds registration submissions per client IP.
type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
}

// ExportConfig protects the CSV export. An empty key leaves it open.
type ExportConfig struct {
	SigningKey string `env:"EXPORT_SIGNING_KEY"`
}

// dotenvFiles are loaded in order; earlier files win.
var dotenvFiles = []string{".env.local", ".env"}

// Load reads .env files when present and parses the environment.
func Load() (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the process cannot start with.
func (c Config) Validate() error {
	switch c.SideEffectMode {
	case DispatchAwait, DispatchDetach:
	default:
		return fmt.Errorf("SIDE_EFFECT_MODE must be %q or %q, got %q", DispatchAwait, DispatchDetach, c.SideEffectMode)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Proxies(); err != nil {
		return err
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// Location resolves DisplayTimezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Proxies parses TrustedProxies.
func (c Config) Proxies() (metadata.TrustedProxies, error) {
	p, err := metadata.ParseTrustedProxies(c.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	return p, nil
}

// IsProduction reports whether the process runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
