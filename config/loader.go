package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment variables, e.g. AUTHGATE_SERVER_PORT.
const envPrefix = "AUTHGATE"

// boundKeys lists every config key resolvable from the environment. Viper
// only reads env vars into Unmarshal for explicitly bound keys.
var boundKeys = []string{
	"name",
	"environment",
	"debug",
	"logging.level",
	"logging.format",
	"logging.output",
	"server.host",
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	"server.edge.admin_api_prefix",
	"server.edge.admin_ui_prefix",
	"server.edge.login_path",
	"token.issuer",
	"token.access_token_ttl",
	"token.refresh_token_ttl",
	"ratelimit.window",
	"ratelimit.max_attempts",
	"ratelimit.sweep_interval",
	"observability.enabled",
	"observability.endpoint",
	"observability.insecure",
	"observability.sample_rate",
	"observability.interval",
}

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// Load reads configuration from config.yml, .env, and the environment, then
// applies defaults. Validate and ResolveSecret are left to the caller so
// startup can log with the loaded logging config first.
func Load(opts ...LoaderOption) (*Config, error) {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFile("config.yml")
	}
	if o.envFile == "" {
		o.envFile = findFile(".env")
	}

	// .env first so the env var pass below sees its values.
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", o.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	// The signing secret is also accepted under its conventional plain name.
	if err := v.BindEnv("token.secret", envPrefix+"_TOKEN_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("binding token.secret: %w", err)
	}

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", o.configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// findFile searches standard locations for a file and returns the first hit.
func findFile(name string) string {
	paths := []string{
		"./" + name,
		"./config/" + name,
		"./cmd/authgate/" + name,
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
