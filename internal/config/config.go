// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/prinv/explore"
	"github.com/katalvlaran/prinv/invert"
)

const (
	// AppName names the XDG sub-directory.
	AppName = "prinv"
	// DefaultConfigFile is looked up in the current directory.
	DefaultConfigFile = ".prinv.yaml"
	// XDGConfigFile is looked up relative to the XDG config directories.
	XDGConfigFile = AppName + "/config.yaml"
)

// Defaults.
const (
	DefaultNFunc        = 10
	DefaultDmax         = 100.0
	DefaultSmearPoints  = invert.DefaultSmearPoints
	DefaultOutputPoints = 100
	DefaultSweepPoints  = explore.DefaultPoints
	DefaultSweepLow     = explore.DefaultLowFactor
	DefaultSweepHigh    = explore.DefaultHighFactor
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Sweep configures the D_max explorer. Low and High are factors of DMax.
type Sweep struct {
	Points      int     `yaml:"points"`
	Low         float64 `yaml:"low"`
	High        float64 `yaml:"high"`
	Concurrency int     `yaml:"concurrency"`
}

// Config is the full run configuration.
type Config struct {
	NFunc int `yaml:"nfunc"`
	// Alpha of 0 asks the command to estimate it.
	Alpha              float64 `yaml:"alpha"`
	DMax               float64 `yaml:"d_max"`
	QMin               float64 `yaml:"q_min"`
	QMax               float64 `yaml:"q_max"`
	SlitHeight         float64 `yaml:"slit_height"`
	SlitWidth          float64 `yaml:"slit_width"`
	SmearPoints        int     `yaml:"smear_points"`
	Background         float64 `yaml:"background"`
	EstimateBackground bool    `yaml:"estimate_background"`
	OutputPoints       int     `yaml:"output_points"`
	Sweep              Sweep   `yaml:"sweep"`
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		NFunc:        DefaultNFunc,
		DMax:         DefaultDmax,
		SmearPoints:  DefaultSmearPoints,
		OutputPoints: DefaultOutputPoints,
		Sweep: Sweep{
			Points: DefaultSweepPoints,
			Low:    DefaultSweepLow,
			High:   DefaultSweepHigh,
		},
	}
}

// XDGConfigDir returns the XDG config directory for prinv.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile returns the configuration file to load, or "" when none exists.
// An explicit path is returned only if it exists.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if p, err := xdg.SearchConfigFile(XDGConfigFile); err == nil {
		return p
	}

	return ""
}

// Load reads path as YAML on top of the defaults and validates the result.
// A missing file yields ErrConfigNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := NewConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks every field and returns the first violated rule.
func (c *Config) Validate() error {
	switch {
	case c.NFunc < 1:
		return ErrInvalidNFunc
	case !finite(c.Alpha) || c.Alpha < 0:
		return ErrInvalidAlpha
	case !finite(c.DMax) || c.DMax <= 0:
		return ErrInvalidDmax
	case !finite(c.QMin) || !finite(c.QMax) || c.QMin < 0 || c.QMax < 0 || (c.QMax > 0 && c.QMin > c.QMax):
		return ErrInvalidQRange
	case !finite(c.SlitHeight) || !finite(c.SlitWidth) || c.SlitHeight < 0 || c.SlitWidth < 0 || c.SmearPoints < 1:
		return ErrInvalidSlit
	case c.Sweep.Points < 2 || !(c.Sweep.Low > 0) || !finite(c.Sweep.High) || c.Sweep.High < c.Sweep.Low || c.Sweep.Concurrency < 0:
		return ErrInvalidSweep
	case c.OutputPoints < 1:
		return ErrInvalidOutputPoints
	}

	return nil
}

// EngineOptions translates the configuration into engine options.
func (c *Config) EngineOptions() []invert.Option {
	opts := []invert.Option{
		invert.WithQRange(c.QMin, c.QMax),
		invert.WithSmearPoints(c.SmearPoints),
	}
	if c.EstimateBackground {
		opts = append(opts, invert.WithEstimateBackground(true))
	} else {
		opts = append(opts, invert.WithBackground(c.Background))
	}

	return opts
}

// ExploreOptions translates the sweep settings into explorer options.
func (c *Config) ExploreOptions() []explore.Option {
	return []explore.Option{
		explore.WithRange(c.Sweep.Low*c.DMax, c.Sweep.High*c.DMax),
		explore.WithPoints(c.Sweep.Points),
		explore.WithConcurrency(c.Sweep.Concurrency),
		explore.WithEngineOptions(c.EngineOptions()...),
	}
}
