package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/notify"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

type Config struct {
	Issuer         string `env:"ADMINHUB_ISSUER" envDefault:"adminhub"`
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"` // Optional: enables POST /v1/bootstrap while no users exist
	NumKeys        int    `env:"ADMINHUB_NUM_KEYS" envDefault:"3"`

	// AdminCrossTenantReads lets admins read companies other than their own.
	AdminCrossTenantReads bool `env:"ADMINHUB_ADMIN_CROSS_TENANT_READS" envDefault:"true"`

	DatabaseFile string `env:"ADMINHUB_DATABASE_FILE" envDefault:"adminhub.db"`
	PepperFile   string `env:"ADMINHUB_PEPPER_FILE" envDefault:"pepper"`

	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	PasswordResetTTL time.Duration `env:"PASSWORD_RESET_TTL" envDefault:"1h"`

	ArchivingSecretKey string        `env:"ARCHIVING_SECRET_KEY"` // Required
	ArchivingInterval  time.Duration `env:"ARCHIVING_INTERVAL" envDefault:"24h"`
	ArchiveRetention   time.Duration `env:"ARCHIVE_RETENTION" envDefault:"720h"`

	// PublicURL is the origin used in email links.
	PublicURL    string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	SecureCookie bool   `env:"SECURE_COOKIE" envDefault:"false"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	RateLimits httpx.RateLimitProfiles `envPrefix:"RATELIMIT_"`
}

// LoadConfig reads an optional .env file and then the environment. Rate
// limit profiles start from httpx.DefaultRateLimitProfiles and only fields
// present in the environment override them.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{RateLimits: httpx.DefaultRateLimitProfiles()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c Config) Validate() error {
	var errs []error

	if c.ArchivingSecretKey == "" {
		errs = append(errs, errors.New("ARCHIVING_SECRET_KEY is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.ArchivingInterval <= 0 {
		errs = append(errs, errors.New("ARCHIVING_INTERVAL must be positive"))
	}
	if c.NumKeys < 1 || c.NumKeys > 10 {
		errs = append(errs, fmt.Errorf("ADMINHUB_NUM_KEYS %d must be between 1 and 10", c.NumKeys))
	}

	// SMTP is all or nothing: a host without a sender would fail on first send.
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	if c.SMTPHost == "" && (c.SMTPUsername != "" || c.SMTPPassword != "" || c.SMTPFrom != "") {
		errs = append(errs, errors.New("SMTP_HOST is required when other SMTP settings are set"))
	}

	for name, l := range map[string]httpx.RateLimitConfig{
		"STRICT":   c.RateLimits.Strict,
		"MODERATE": c.RateLimits.Moderate,
		"LENIENT":  c.RateLimits.Lenient,
		"PUBLIC":   c.RateLimits.Public,
	} {
		if l.RequestsPerWindow < 1 || l.Window <= 0 || l.Burst < 1 {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s_* must be positive", name))
		}
	}

	return errors.Join(errs...)
}

// SMTP returns the mailer settings, ok is false when SMTP is not configured.
func (c Config) SMTP() (cfg notify.SMTPConfig, ok bool) {
	if c.SMTPHost == "" {
		return notify.SMTPConfig{}, false
	}
	return notify.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}, true
}
