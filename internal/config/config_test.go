package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.HasKeys())
	assert.Equal(t, "https://api.gopluslabs.io", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.PartialRetryDelay)
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("GP_PUBLIC", "mBOMg20QW11BbtyH4Zh0")
	t.Setenv("GP_SECRET", "V6aRfxlPJwN3ViJSIFSCdxPvneajuJsh")
	t.Setenv("GOPLUS_BASE_URL", "http://localhost:8080")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CONTRACT_POLL_ATTEMPTS", "5")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.HasKeys())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.ContractPollAttempts)
}

func TestParse_BadValue(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	_, err := Parse()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"half a key pair", func(c *Config) { c.AppKey = "k" }, "GP_PUBLIC and GP_SECRET"},
		{"relative base url", func(c *Config) { c.BaseURL = "/api" }, "GOPLUS_BASE_URL"},
		{"negative rate", func(c *Config) { c.RateLimitRPS = -1 }, "RATE_LIMIT_RPS"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST"},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }, "CACHE_TTL"},
		{"no partial attempts", func(c *Config) { c.PartialRetryAttempts = 0 }, "PARTIAL_RETRY_ATTEMPTS"},
		{"no poll attempts", func(c *Config) { c.ContractPollAttempts = 0 }, "CONTRACT_POLL_ATTEMPTS"},
		{"short jwt secret", func(c *Config) { c.GatewayJWTSecret = "short" }, "GATEWAY_JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, Default().Validate())
}
