// Package config loads and validates the mousewarp tunables.
//
// Configuration is layered: compiled-in defaults, then the TOML file at
// ~/.config/mousewarp/config.toml (or the path given on the command line),
// then MOUSEWARP_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	General        General        `toml:"general" envconfig:"GENERAL"`
	EdgeWrap       EdgeWrap       `toml:"edge_wrap" envconfig:"EDGE_WRAP"`
	EdgeResistance EdgeResistance `toml:"edge_resistance" envconfig:"EDGE_RESISTANCE"`
	MonitorSwitch  MonitorSwitch  `toml:"monitor_switch" envconfig:"MONITOR_SWITCH"`
	Acceleration   Acceleration   `toml:"acceleration" envconfig:"ACCELERATION"`
	Crossing       Crossing       `toml:"crossing" envconfig:"CROSSING"`
	Highlight      Highlight      `toml:"highlight" envconfig:"HIGHLIGHT"`
	Theme          Theme          `toml:"theme" envconfig:"THEME"`
	FocusFollow    FocusFollow    `toml:"focus_follow" envconfig:"FOCUS_FOLLOW"`
}

type General struct {
	PollInterval Duration `toml:"poll_interval" envconfig:"POLL_INTERVAL"`
	LogLevel     string   `toml:"log_level" envconfig:"LOG_LEVEL"`
}

type EdgeWrap struct {
	Enabled    bool `toml:"enabled" envconfig:"ENABLED"`
	Horizontal bool `toml:"horizontal" envconfig:"HORIZONTAL"`
	Vertical   bool `toml:"vertical" envconfig:"VERTICAL"`
}

type EdgeResistance struct {
	Enabled           bool     `toml:"enabled" envconfig:"ENABLED"`
	Mode              string   `toml:"mode" envconfig:"MODE"`
	TimeDelay         Duration `toml:"time_delay" envconfig:"TIME_DELAY"`
	DistanceThreshold int      `toml:"distance_threshold" envconfig:"DISTANCE_THRESHOLD"`
	VelocityThreshold float64  `toml:"velocity_threshold" envconfig:"VELOCITY_THRESHOLD"`
}

type MonitorSwitch struct {
	Enabled        bool     `toml:"enabled" envconfig:"ENABLED"`
	ShiftThreshold int      `toml:"shift_threshold" envconfig:"SHIFT_THRESHOLD"`
	Cooldown       Duration `toml:"cooldown" envconfig:"COOLDOWN"`
}

type Acceleration struct {
	Enabled    bool    `toml:"enabled" envconfig:"ENABLED"`
	Multiplier float64 `toml:"multiplier" envconfig:"MULTIPLIER"`
	// EdgeResistance is the overflow, in pixels, absorbed at a monitor
	// boundary before accelerated motion is allowed through. 0 disables
	// acceleration-driven crossing entirely (hard clamp).
	EdgeResistance int `toml:"edge_resistance" envconfig:"EDGE_RESISTANCE"`
}

type Crossing struct {
	Enabled bool `toml:"enabled" envconfig:"ENABLED"`
	// NaturalBand is how close, in pixels, an arrival must be to the
	// shared boundary to count as a natural crossing.
	NaturalBand int      `toml:"natural_band" envconfig:"NATURAL_BAND"`
	Cooldown    Duration `toml:"cooldown" envconfig:"COOLDOWN"`
}

type Highlight struct {
	Enabled          bool     `toml:"enabled" envconfig:"ENABLED"`
	Size             int      `toml:"size" envconfig:"SIZE"`
	Duration         Duration `toml:"duration" envconfig:"DURATION"`
	MonitorWarpColor string   `toml:"monitor_warp_color" envconfig:"MONITOR_WARP_COLOR"`
	EdgeWarpColor    string   `toml:"edge_warp_color" envconfig:"EDGE_WARP_COLOR"`
	TeleportColor    string   `toml:"teleport_color" envconfig:"TELEPORT_COLOR"`
	QueueDepth       int      `toml:"queue_depth" envconfig:"QUEUE_DEPTH"`
	Workers          int      `toml:"workers" envconfig:"WORKERS"`
}

type Theme struct {
	Mode     string   `toml:"mode" envconfig:"MODE"`
	CacheTTL Duration `toml:"cache_ttl" envconfig:"CACHE_TTL"`
}

type FocusFollow struct {
	Enabled bool   `toml:"enabled" envconfig:"ENABLED"`
	Socket  string `toml:"socket" envconfig:"SOCKET"`
}

// Default returns the compiled-in configuration, matching the documented
// defaults in the README.
func Default() *Config {
	return &Config{
		General: General{
			PollInterval: Duration(10 * time.Millisecond),
			LogLevel:     "info",
		},
		EdgeWrap: EdgeWrap{
			Enabled:    true,
			Horizontal: true,
			Vertical:   true,
		},
		EdgeResistance: EdgeResistance{
			Enabled:           false,
			Mode:              "distance",
			TimeDelay:         Duration(150 * time.Millisecond),
			DistanceThreshold: 30,
			VelocityThreshold: 800,
		},
		MonitorSwitch: MonitorSwitch{
			Enabled:        true,
			ShiftThreshold: 100,
			Cooldown:       Duration(400 * time.Millisecond),
		},
		Acceleration: Acceleration{
			Enabled:        true,
			Multiplier:     2.0,
			EdgeResistance: 50,
		},
		Crossing: Crossing{
			Enabled:     true,
			NaturalBand: 64,
			Cooldown:    Duration(100 * time.Millisecond),
		},
		Highlight: Highlight{
			Enabled:          true,
			Size:             80,
			Duration:         Duration(600 * time.Millisecond),
			MonitorWarpColor: "sky",
			EdgeWarpColor:    "peach",
			TeleportColor:    "mauve",
			QueueDepth:       8,
			Workers:          4,
		},
		Theme: Theme{
			Mode:     "auto",
			CacheTTL: Duration(5 * time.Second),
		},
		FocusFollow: FocusFollow{
			Enabled: false,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mousewarp", "config.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "mousewarp", "config.toml")
}

// Load builds a configuration from defaults, the TOML file at path (which
// may be absent) and environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := envconfig.Process("MOUSEWARP", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the tunables for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.General.PollInterval <= 0 {
		return fmt.Errorf("general.poll_interval must be positive, got %s", c.General.PollInterval)
	}
	switch c.EdgeResistance.Mode {
	case "none", "time", "distance", "velocity":
	default:
		return fmt.Errorf("edge_resistance.mode must be one of none, time, distance, velocity; got %q", c.EdgeResistance.Mode)
	}
	if c.EdgeResistance.TimeDelay < 0 {
		return fmt.Errorf("edge_resistance.time_delay must not be negative")
	}
	if c.EdgeResistance.DistanceThreshold < 0 {
		return fmt.Errorf("edge_resistance.distance_threshold must not be negative")
	}
	if c.EdgeResistance.VelocityThreshold < 0 {
		return fmt.Errorf("edge_resistance.velocity_threshold must not be negative")
	}
	if c.MonitorSwitch.ShiftThreshold < 0 {
		return fmt.Errorf("monitor_switch.shift_threshold must not be negative")
	}
	if c.MonitorSwitch.Cooldown < 0 {
		return fmt.Errorf("monitor_switch.cooldown must not be negative")
	}
	if c.Acceleration.Multiplier < 1 {
		return fmt.Errorf("acceleration.multiplier must be at least 1, got %g", c.Acceleration.Multiplier)
	}
	if c.Acceleration.EdgeResistance < 0 {
		return fmt.Errorf("acceleration.edge_resistance must not be negative")
	}
	if c.Crossing.NaturalBand < 0 {
		return fmt.Errorf("crossing.natural_band must not be negative")
	}
	if c.Crossing.Cooldown < 0 {
		return fmt.Errorf("crossing.cooldown must not be negative")
	}
	if c.Highlight.Size <= 0 {
		return fmt.Errorf("highlight.size must be positive")
	}
	if c.Highlight.Duration <= 0 {
		return fmt.Errorf("highlight.duration must be positive")
	}
	if c.Highlight.QueueDepth <= 0 {
		return fmt.Errorf("highlight.queue_depth must be positive")
	}
	if c.Highlight.Workers <= 0 {
		return fmt.Errorf("highlight.workers must be positive")
	}
	switch c.Theme.Mode {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("theme.mode must be one of auto, dark, light; got %q", c.Theme.Mode)
	}
	return nil
}
