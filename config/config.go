package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"bao/selector"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds everything needed to build move-picking sessions.
type Config struct {
	// Network
	NetworkPath string `mapstructure:"network_path"`

	// Selection
	TieBreak string `mapstructure:"tie_break"`

	// Parallel evaluation
	Workers int `mapstructure:"workers"`

	// Observability
	LogLevel string `mapstructure:"log_level"`
	Metrics  bool   `mapstructure:"metrics"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		NetworkPath: "",
		TieBreak:    selector.TieUnstable.String(),
		Workers:     4,
		LogLevel:    "info",
		Metrics:     false,
	}
}

// Load reads path (YAML, TOML or JSON, by extension) over the defaults.
// Every key can be overridden from the environment, e.g. BAO_WORKERS.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("network_path", def.NetworkPath)
	v.SetDefault("tie_break", def.TieBreak)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("metrics", def.Metrics)

	v.SetEnvPrefix("BAO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.NetworkPath == "" {
		return fmt.Errorf("network_path is required")
	}
	if _, err := selector.ParseTieBreak(c.TieBreak); err != nil {
		return fmt.Errorf("tie_break: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// TieBreakMode returns the parsed tie_break setting.
func (c *Config) TieBreakMode() selector.TieBreak {
	tb, err := selector.ParseTieBreak(c.TieBreak)
	if err != nil {
		return selector.TieUnstable
	}
	return tb
}

// Logger returns a logger writing to w at the configured level.
// A nil w means stderr.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
