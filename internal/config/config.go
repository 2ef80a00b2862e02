// Package config loads server settings from defaults, the environment and
// command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "CHESS_"

type Config struct {
	Addr            string
	AllowOrigins    string
	LogLevel        string
	LogFormat       string
	MatchInterval   time.Duration
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		AllowOrigins:    "*",
		LogLevel:        "info",
		LogFormat:       "console",
		MatchInterval:   time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config for program name from the environment lookup and args.
func Load(name string, args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	fs.DurationVar(&cfg.MatchInterval, "match-interval", cfg.MatchInterval, "how often the matchmaker pairs players")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromOS is Load over os.Args and os.Getenv.
func FromOS() (Config, error) {
	return Load(os.Args[0], os.Args[1:], os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	str := func(key string, dst *string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v := getenv(envPrefix + key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, ErrInvalidConfig)
		}
		*dst = d
		return nil
	}

	str("ADDR", &c.Addr)
	str("ALLOW_ORIGINS", &c.AllowOrigins)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	if err := dur("MATCH_INTERVAL", &c.MatchInterval); err != nil {
		return err
	}
	return dur("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("empty listen address: %w", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: %w", c.LogFormat, ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	if c.MatchInterval <= 0 {
		return fmt.Errorf("match interval %v: %w", c.MatchInterval, ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout %v: %w", c.ShutdownTimeout, ErrInvalidConfig)
	}
	return nil
}
