// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/windex/internal/notify"
)

// Default configuration values.
const (
	DefaultGap          = notify.DefaultGap
	DefaultDebounce     = notify.DefaultDebounce
	DefaultDrainPoll    = notify.DefaultDrainPoll
	DefaultPadding      = 20
	DefaultAnchor       = "bottom-right"
	DefaultWidth        = 300
	DefaultHeight       = 100
	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
	DefaultTrayIcon     = "windex"
	maxDebounce         = 10 * time.Second
	configDirName       = "windex"
	configFileName      = "windex.toml"
)

// Config is the windex configuration.
// Loaded from ~/.config/windex/windex.toml
type Config struct {
	Notifications NotificationsConfig `toml:"notifications"`
	Screen        ScreenConfig        `toml:"screen"`
	Indexer       IndexerConfig       `toml:"indexer"`
	Tray          TrayConfig          `toml:"tray"`
}

// NotificationsConfig contains notification stacking settings.
type NotificationsConfig struct {
	Gap             int      `toml:"gap"`              // Pixels between stacked notifications
	Debounce        Duration `toml:"debounce"`         // Quiet period before a re-layout
	Padding         int      `toml:"padding"`          // Pixels from the screen edge
	Anchor          string   `toml:"anchor"`           // "bottom-right", "top-left", etc.
	Width           int      `toml:"width"`            // Notification width in pixels
	Height          int      `toml:"height"`           // Notification height in pixels
	DrainPoll       Duration `toml:"drain_poll"`       // Poll interval while shutting down
	DefaultDuration Duration `toml:"default_duration"` // "0" keeps notifications until closed
}

// ScreenConfig is the size of the headless screen.
type ScreenConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// IndexerConfig contains component indexing settings.
type IndexerConfig struct {
	MaxBranches int `toml:"max_branches"` // 0 = one goroutine per branch
}

// TrayConfig contains system tray defaults for activity windows.
type TrayConfig struct {
	Enabled         bool   `toml:"enabled"`
	RemoveOnRestore bool   `toml:"remove_on_restore"`
	AlwaysVisible   bool   `toml:"always_visible"`
	Icon            string `toml:"icon"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationsConfig{
			Gap:             DefaultGap,
			Debounce:        Duration(DefaultDebounce),
			Padding:         DefaultPadding,
			Anchor:          DefaultAnchor,
			Width:           DefaultWidth,
			Height:          DefaultHeight,
			DrainPoll:       Duration(DefaultDrainPoll),
			DefaultDuration: Duration(0), // Sticky
		},
		Screen: ScreenConfig{
			Width:  DefaultScreenWidth,
			Height: DefaultScreenHeight,
		},
		Indexer: IndexerConfig{
			MaxBranches: 0,
		},
		Tray: TrayConfig{
			Enabled:         false,
			RemoveOnRestore: true,
			AlwaysVisible:   false,
			Icon:            DefaultTrayIcon,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDirName, configFileName)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig overlays TOML data onto the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path atomically via a temp file.
// If path is empty, uses the default config path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	n := c.Notifications

	if _, err := notify.ParseAnchor(n.Anchor); err != nil {
		return fmt.Errorf("invalid anchor %q, must be one of: %v", n.Anchor, notify.Anchors())
	}
	if n.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", n.Gap)
	}
	if n.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", n.Padding)
	}
	if d := n.Debounce.Duration(); d <= 0 || d > maxDebounce {
		return fmt.Errorf("debounce must be between 1ms and %s, got %s", maxDebounce, d)
	}
	if n.DrainPoll.Duration() <= 0 {
		return fmt.Errorf("drain_poll must be positive, got %s", n.DrainPoll.Duration())
	}
	if n.DefaultDuration.Duration() < 0 {
		return fmt.Errorf("default_duration must not be negative, got %s", n.DefaultDuration.Duration())
	}
	if n.Width < 1 || n.Height < 1 {
		return fmt.Errorf("notification size must be positive, got %dx%d", n.Width, n.Height)
	}

	if c.Screen.Width < n.Width || c.Screen.Height < n.Height {
		return fmt.Errorf("screen %dx%d is smaller than a notification", c.Screen.Width, c.Screen.Height)
	}

	if c.Indexer.MaxBranches < 0 {
		return fmt.Errorf("max_branches must not be negative, got %d", c.Indexer.MaxBranches)
	}

	if c.Tray.Enabled && c.Tray.Icon == "" {
		return errors.New("tray icon must be set when the tray is enabled")
	}

	return nil
}

// Anchor returns the parsed notification anchor. Validate guarantees it parses.
func (c *Config) Anchor() notify.Anchor {
	a, _ := notify.ParseAnchor(c.Notifications.Anchor)
	return a
}

// Scheduler returns the notification scheduler tuning.
func (c *Config) Scheduler() notify.Config {
	return notify.Config{
		Gap:       c.Notifications.Gap,
		Debounce:  c.Notifications.Debounce.Duration(),
		DrainPoll: c.Notifications.DrainPoll.Duration(),
	}
}

// Geometry returns the placement geometry for a default-sized notification.
func (c *Config) Geometry() notify.Geometry {
	return notify.Geometry{
		ScreenWidth:  c.Screen.Width,
		ScreenHeight: c.Screen.Height,
		Width:        c.Notifications.Width,
		Height:       c.Notifications.Height,
		Padding:      c.Notifications.Padding,
	}
}
