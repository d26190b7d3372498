// Package config holds the monitor's run settings. Values come from the
// defaults, then an optional YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrBadInterval = errors.New("config: interval must be > 0")
	ErrBadEMA      = errors.New("config: ema must be in [0,1]")
	ErrNegative    = errors.New("config: samples, warmup and limit must be >= 0")
)

// Config is the full set of run settings.
type Config struct {
	Root     string        `yaml:"root"`     // procfs mount, /proc normally
	Passwd   string        `yaml:"passwd"`   // account file for uid lookups
	Interval time.Duration `yaml:"interval"` // polling period
	Samples  int           `yaml:"samples"`  // 0 = until interrupted
	Warmup   int           `yaml:"warmup"`   // initial samples left out of display and averages
	EMA      float64       `yaml:"ema"`      // cpu smoothing factor, 0 disables
	Pretty   bool          `yaml:"pretty"`
	Tasks    bool          `yaml:"tasks"` // print the active task table every tick
	Limit    int           `yaml:"limit"` // max task rows, 0 = all
	CSV      string        `yaml:"csv"`
	JSON     string        `yaml:"json"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Root:     "/proc",
		Passwd:   "/etc/passwd",
		Interval: time.Second,
		Samples:  5,
		Warmup:   1,
		Pretty:   true,
		Limit:    20,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Interval <= 0 {
		errs = append(errs, ErrBadInterval)
	}
	if c.EMA < 0 || c.EMA > 1 {
		errs = append(errs, ErrBadEMA)
	}
	if c.Samples < 0 || c.Warmup < 0 || c.Limit < 0 {
		errs = append(errs, ErrNegative)
	}
	return errors.Join(errs...)
}
