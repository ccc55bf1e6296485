// Package config persists Hashdeck's documents under ~/.hashdeck: UI
// preferences (config.json), the per-identity channel lists
// (channels_cache.json), the relay set (relay_config.json), and the optional
// startup overrides (startup_config.json). Every save rewrites the whole
// document; on failure the in-memory state stays authoritative and the
// error is logged by the caller.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhubert/hashdeck/internal/errors"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// Config holds the application preferences
type Config struct {
	Theme                 string `json:"theme,omitempty"`                   // UI theme name
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notifications on publish failures
	GroupThresholdSeconds int    `json:"group_threshold_seconds,omitempty"` // Max gap joining messages into one block
	LastSeenVersion       string `json:"last_seen_version,omitempty"`       // Last version the user has run

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hashdeck"), nil
}

// configPath returns the path to the preferences file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the preferences from disk, or creates defaults if the file
// doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		NotificationsEnabled:  true,
		GroupThresholdSeconds: int(timeline.DefaultGroupThreshold / time.Second),
		filePath:              path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized backfills defaults after unmarshaling. Must only be
// called during single-threaded initialization, before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.GroupThresholdSeconds == 0 {
		c.GroupThresholdSeconds = int(timeline.DefaultGroupThreshold / time.Second)
	}
}

// Validate checks that the preferences are internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.GroupThresholdSeconds < 0 {
		return errors.ConfigInvalid("group_threshold_seconds must not be negative")
	}
	return nil
}

// Save writes the preferences to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GroupThreshold returns the grouping gap as a duration.
func (c *Config) GroupThreshold() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.GroupThresholdSeconds <= 0 {
		return timeline.DefaultGroupThreshold
	}
	return time.Duration(c.GroupThresholdSeconds) * time.Second
}

// GetTheme returns the configured theme name.
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name.
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled reports whether desktop notifications are on.
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications.
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLastSeenVersion returns the last version the user has run.
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion records the running version.
func (c *Config) SetLastSeenVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = version
}
