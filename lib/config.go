package lib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds settings shared by the CLI commands.
type Config struct {
	Format FormatConfig `toml:"format"`
	Timer  TimerConfig  `toml:"timer"`
}

// FormatConfig holds batch formatting settings.
type FormatConfig struct {
	Strict      bool `toml:"strict"`      // Reject negative and non-finite values
	Parallelism int  `toml:"parallelism"` // Number of formatting workers
}

// TimerConfig holds live timer settings. Durations use time.ParseDuration syntax.
type TimerConfig struct {
	Interval string `toml:"interval"` // e.g. "1s"
	Limit    string `toml:"limit"`    // e.g. "30m"; empty runs until interrupted
}

func DefaultConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Strict:      false,
			Parallelism: runtime.NumCPU(),
		},
		Timer: TimerConfig{
			Interval: "1s",
			Limit:    "",
		},
	}
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "crossword-clock", "config.toml")
}

// LoadConfig starts with defaults, overlays the file at path if it exists,
// then applies CROSSWORD_CLOCK_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CROSSWORD_CLOCK_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CROSSWORD_CLOCK_STRICT: %w", err)
		}
		cfg.Format.Strict = strict
	}
	if v := os.Getenv("CROSSWORD_CLOCK_PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CROSSWORD_CLOCK_PARALLELISM: %w", err)
		}
		cfg.Format.Parallelism = n
	}
	if v := os.Getenv("CROSSWORD_CLOCK_TIMER_INTERVAL"); v != "" {
		cfg.Timer.Interval = v
	}
	if v := os.Getenv("CROSSWORD_CLOCK_TIMER_LIMIT"); v != "" {
		cfg.Timer.Limit = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Format.Parallelism < 1 {
		return errors.New("format.parallelism must be at least 1")
	}

	interval, err := c.Timer.IntervalDuration()
	if err != nil {
		return err
	}
	if interval <= 0 {
		return errors.New("timer.interval must be positive")
	}

	limit, err := c.Timer.LimitDuration()
	if err != nil {
		return err
	}
	if limit < 0 {
		return errors.New("timer.limit must not be negative")
	}

	return nil
}

func (t TimerConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(t.Interval)
	if err != nil {
		return 0, fmt.Errorf("timer.interval: %w", err)
	}
	return d, nil
}

// LimitDuration returns 0 when no limit is configured.
func (t TimerConfig) LimitDuration() (time.Duration, error) {
	if t.Limit == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.Limit)
	if err != nil {
		return 0, fmt.Errorf("timer.limit: %w", err)
	}
	return d, nil
}
