package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database"`
	Stripe   StripeConfig   `koanf:"stripe"`
	Identity IdentityConfig `koanf:"identity"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// StoreConfig selects the data-store adapter. Mode "postgrest" talks to a
// hosted REST data API with the caller's token forwarded for row security;
// mode "postgres" owns the database directly (DatabaseConfig applies).
type StoreConfig struct {
	Mode        string        `koanf:"mode" validate:"required,oneof=postgrest postgres"`
	URL         string        `koanf:"url"`
	AnonKey     string        `koanf:"anon_key"`
	ServiceKey  string        `koanf:"service_key"`
	ConnTimeout time.Duration `koanf:"conn_timeout"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type StripeConfig struct {
	SecretKey        string        `koanf:"secret_key" validate:"required"`
	WebhookSecret    string        `koanf:"webhook_secret" validate:"required"`
	BaseURL          string        `koanf:"base_url"`
	ConnTimeout      time.Duration `koanf:"conn_timeout"`
	WebhookTolerance time.Duration `koanf:"webhook_tolerance"`
}

// IdentityConfig selects how bearer tokens resolve to users. Mode "http"
// delegates to the auth provider's user endpoint; mode "jwt" verifies the
// token locally against the shared signing secret.
type IdentityConfig struct {
	Mode        string        `koanf:"mode" validate:"required,oneof=http jwt"`
	URL         string        `koanf:"url"`
	JWTSecret   string        `koanf:"jwt_secret"`
	ConnTimeout time.Duration `koanf:"conn_timeout"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func (c LoggerConfig) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("CHECKOUT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CHECKOUT_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	applyDefaults(mainConfig)

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Stripe.BaseURL == "" {
		cfg.Stripe.BaseURL = "https://api.stripe.com"
	}
	if cfg.Stripe.ConnTimeout == 0 {
		cfg.Stripe.ConnTimeout = 30 * time.Second
	}
	if cfg.Store.ConnTimeout == 0 {
		cfg.Store.ConnTimeout = 10 * time.Second
	}
	if cfg.Identity.ConnTimeout == 0 {
		cfg.Identity.ConnTimeout = 10 * time.Second
	}
}
