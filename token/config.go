package token

import (
	"errors"
	"time"
)

// Config configures the token service.
type Config struct {
	// Secret is the shared HMAC signing key. Required; there is no
	// fallback value at this layer.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens (default: 15m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 7d).
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 7 * 24 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: signing secret is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("token: access token TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("token: refresh token TTL must be positive")
	}
	return nil
}
