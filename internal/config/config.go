// Package config loads the optional rotlabel.yaml file and resolves it, together with environment overrides, into validated settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codalotl/rotlabel/internal/rotlabel"
	"github.com/codalotl/rotlabel/internal/seqdiff"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory when no explicit path is given.
const FileName = "rotlabel.yaml"

// Environment variables that override the file.
const (
	EnvStrategy  = "ROTLABEL_STRATEGY"
	EnvDirection = "ROTLABEL_DIRECTION"
)

// Config mirrors rotlabel.yaml. Every field is optional.
type Config struct {
	Strategy  string          `yaml:"strategy,omitempty"`
	Direction string          `yaml:"direction,omitempty"`
	Animation AnimationConfig `yaml:"animation"`
	Ticker    TickerConfig    `yaml:"ticker"`
	Colors    ColorsConfig    `yaml:"colors"`
	Width     WidthConfig     `yaml:"width"`
	LogFile   string          `yaml:"log_file,omitempty"`
}

// AnimationConfig controls transition timing.
type AnimationConfig struct {
	Frames        *int   `yaml:"frames,omitempty"` // 0 disables animation; unset means DefaultFrames.
	FrameInterval string `yaml:"frame_interval,omitempty"`
}

// TickerConfig controls the demo price feed.
type TickerConfig struct {
	Start    float64 `yaml:"start,omitempty"`
	Interval string  `yaml:"interval,omitempty"`
	MaxDelta float64 `yaml:"max_delta,omitempty"`
	Currency string  `yaml:"currency,omitempty"`
}

// ColorsConfig holds lipgloss color strings (ANSI indexes like "2" or hex like "#00ff00").
type ColorsConfig struct {
	Text      string `yaml:"text,omitempty"`
	Increment string `yaml:"increment,omitempty"`
	Decrement string `yaml:"decrement,omitempty"`
}

// WidthConfig controls cell width measurement.
type WidthConfig struct {
	EastAsian bool `yaml:"east_asian,omitempty"`
	EmojiWide bool `yaml:"emoji_wide,omitempty"`
}

// Resolved contains validated settings with defaults applied.
type Resolved struct {
	Source string // Path of the file that was loaded, or "" if none.

	Strategy  seqdiff.Strategy
	Direction rotlabel.Direction

	Frames        int
	FrameInterval time.Duration

	Start    float64
	Interval time.Duration
	MaxDelta float64
	Currency string

	TextColor      string
	IncrementColor string
	DecrementColor string

	EastAsianWidth bool
	EmojiWide      bool

	LogFile string
}

// Defaults.
const (
	DefaultFrames        = 6
	DefaultFrameInterval = 40 * time.Millisecond
	DefaultStart         = 1300
	DefaultInterval      = time.Second
	DefaultMaxDelta      = 500
	DefaultCurrency      = "$"
)

// Load reads and parses path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads rotlabel.yaml from dir if present. A missing file yields an empty Config.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// Resolve loads configuration and applies environment overrides and defaults. If explicitPath is non-empty that file must exist; otherwise rotlabel.yaml in dir is used if present.
func Resolve(dir, explicitPath string) (*Resolved, error) {
	var (
		cfg    *Config
		source string
		err    error
	)
	if explicitPath != "" {
		cfg, err = Load(explicitPath)
		source = explicitPath
	} else {
		cfg, source, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvStrategy); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv(EnvDirection); v != "" {
		cfg.Direction = v
	}

	res, err := cfg.resolve()
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	res.Source = source
	return res, nil
}

func (c *Config) resolve() (*Resolved, error) {
	strategy, err := seqdiff.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	direction, err := rotlabel.ParseDirection(c.Direction)
	if err != nil {
		return nil, err
	}

	frameInterval, err := parseDuration("animation.frame_interval", c.Animation.FrameInterval, DefaultFrameInterval)
	if err != nil {
		return nil, err
	}
	interval, err := parseDuration("ticker.interval", c.Ticker.Interval, DefaultInterval)
	if err != nil {
		return nil, err
	}

	frames := DefaultFrames
	if c.Animation.Frames != nil {
		frames = *c.Animation.Frames
		if frames < 0 {
			return nil, fmt.Errorf("animation.frames must be >= 0, got %d", frames)
		}
	}
	if c.Ticker.MaxDelta < 0 {
		return nil, fmt.Errorf("ticker.max_delta must be >= 0, got %v", c.Ticker.MaxDelta)
	}

	return &Resolved{
		Strategy:       strategy,
		Direction:      direction,
		Frames:         frames,
		FrameInterval:  frameInterval,
		Start:          orDefault(c.Ticker.Start, DefaultStart),
		Interval:       interval,
		MaxDelta:       orDefault(c.Ticker.MaxDelta, DefaultMaxDelta),
		Currency:       orDefault(strings.TrimSpace(c.Ticker.Currency), DefaultCurrency),
		TextColor:      orDefault(strings.TrimSpace(c.Colors.Text), "7"),
		IncrementColor: orDefault(strings.TrimSpace(c.Colors.Increment), "2"),
		DecrementColor: orDefault(strings.TrimSpace(c.Colors.Decrement), "1"),
		EastAsianWidth: c.Width.EastAsian,
		EmojiWide:      c.Width.EmojiWide,
		LogFile:        strings.TrimSpace(c.LogFile),
	}, nil
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
