// Package config loads process configuration from the environment and .env
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppKey    string `env:"GP_PUBLIC"`
	AppSecret string `env:"GP_SECRET"`
	BaseURL   string `env:"GOPLUS_BASE_URL"`

	ListenAddr       string `env:"LISTEN_ADDR"`
	RedisURL         string `env:"REDIS_URL"`
	GatewayJWTSecret string `env:"GATEWAY_JWT_SECRET"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"`

	CacheTTL             time.Duration `env:"CACHE_TTL"`
	PartialRetryDelay    time.Duration `env:"PARTIAL_RETRY_DELAY"`
	PartialRetryAttempts int           `env:"PARTIAL_RETRY_ATTEMPTS"`
	ContractPollInterval time.Duration `env:"CONTRACT_POLL_INTERVAL"`
	ContractPollAttempts int           `env:"CONTRACT_POLL_ATTEMPTS"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:              "https://api.gopluslabs.io",
		ListenAddr:           ":9000",
		LogLevel:             "info",
		LogFormat:            "json",
		RateLimitBurst:       1,
		CacheTTL:             5 * time.Minute,
		PartialRetryDelay:    15 * time.Second,
		PartialRetryAttempts: 3,
		ContractPollInterval: 5 * time.Second,
		ContractPollAttempts: 3,
	}
}

// Load reads .env when present, then the environment. Missing keys are fine:
// the client runs anonymously.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the environment over the defaults without touching .env.
func Parse() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// HasKeys reports whether both halves of the key pair are set.
func (c Config) HasKeys() bool {
	return c.AppKey != "" && c.AppSecret != ""
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error

	if (c.AppKey == "") != (c.AppSecret == "") {
		errs = append(errs, errors.New("GP_PUBLIC and GP_SECRET must be set together"))
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("GOPLUS_BASE_URL %q is not an absolute URL", c.BaseURL))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be at least 1"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL must not be negative"))
	}
	if c.PartialRetryAttempts < 1 {
		errs = append(errs, errors.New("PARTIAL_RETRY_ATTEMPTS must be at least 1"))
	}
	if c.ContractPollAttempts < 1 {
		errs = append(errs, errors.New("CONTRACT_POLL_ATTEMPTS must be at least 1"))
	}
	if c.GatewayJWTSecret != "" && len(c.GatewayJWTSecret) < 32 {
		errs = append(errs, errors.New("GATEWAY_JWT_SECRET must be at least 32 characters"))
	}

	return errors.Join(errs...)
}
