// Package config loads process configuration from LOADOUT_* environment
// variables
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Config is the process configuration. Command line flags override it.
type Config struct {
	RedisAddr string `env:"LOADOUT_REDIS_ADDR" envDefault:"localhost:6379"`
	HTTPAddr  string `env:"LOADOUT_HTTP_ADDR"  envDefault:":8080"`
	// ReportDB is the SQLite file for reports; empty disables them
	ReportDB        string        `env:"LOADOUT_REPORT_DB"`
	LogLevel        string        `env:"LOADOUT_LOG_LEVEL"        envDefault:"info"`
	ShutdownTimeout time.Duration `env:"LOADOUT_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the Config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	errors.ValidateRequired("HTTPAddr", c.HTTPAddr, vb)
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		vb.Field("LogLevel", err.Error())
	}
	if c.ShutdownTimeout <= 0 {
		vb.Field("ShutdownTimeout", "must be positive")
	}
	return vb.Build()
}

// ParseLogLevel accepts debug, info, warn or error in any case
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return 0, errors.InvalidArgumentf("unknown log level %q", level)
	}
	return l, nil
}
