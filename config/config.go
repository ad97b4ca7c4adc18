// Package config defines the service configuration surface and its loader.
// Configuration is layered: a config.yml base, an optional .env file, then
// environment variables, each overriding the previous.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/ratelimit"
	"github.com/skillsenselab/authgate/server"
	"github.com/skillsenselab/authgate/token"
)

// minSecretLen is the shortest signing secret accepted in production.
const minSecretLen = 32

// Config is the full service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Token         token.Config        `yaml:"token" mapstructure:"token"`
	RateLimit     ratelimit.Config    `yaml:"ratelimit" mapstructure:"ratelimit"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ObservabilityConfig controls the optional OTLP exporters.
type ObservabilityConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values to unset fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "authgate"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.RateLimit.ApplyDefaults()

	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
	if c.Observability.Interval == 0 {
		c.Observability.Interval = 15 * time.Second
	}
}

// Validate checks all sections. The token secret is validated separately by
// ResolveSecret, which must run first.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("config.token: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode, which
// hardens cookies and suppresses internal error detail.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ResolveSecret enforces the signing-secret policy. Production refuses to
// start without a real secret; development generates a random throwaway one
// so a fresh checkout runs, at the cost of invalidating tokens on restart.
// Returns true when a generated secret is in use so the caller can warn.
func (c *Config) ResolveSecret() (bool, error) {
	if c.IsProduction() {
		if c.Token.Secret == "" {
			return false, fmt.Errorf("config.token.secret is required in production")
		}
		if len(c.Token.Secret) < minSecretLen {
			return false, fmt.Errorf("config.token.secret must be at least %d bytes in production", minSecretLen)
		}
		return false, nil
	}

	if c.Token.Secret != "" {
		return false, nil
	}

	buf := make([]byte, minSecretLen)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("generating development secret: %w", err)
	}
	c.Token.Secret = hex.EncodeToString(buf)
	return true, nil
}
