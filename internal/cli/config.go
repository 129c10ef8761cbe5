package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the CLI environment. Flags override it.
type Config struct {
	// Profile overrides the definition's profile ("development" or "production").
	Profile  string `env:"STRATA_PROFILE"`
	LogLevel string `env:"STRATA_LOG_LEVEL" envDefault:"warn"`
	// Output selects the final report format: "json" or "yaml".
	Output  string `env:"STRATA_OUTPUT" envDefault:"json"`
	NoColor bool   `env:"NO_COLOR"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom reads the configuration from environ instead of the process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
