package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zhubert/hashdeck/internal/errors"
)

const startupConfigFile = "startup_config.json"

// StartupConfig carries optional boot-time overrides: a single relay to
// prefer and the identity to sign in as. Both fields may be empty.
type StartupConfig struct {
	Relay    string `json:"relay,omitempty"`
	Identity string `json:"identity,omitempty"`
}

func startupConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, startupConfigFile), nil
}

// LoadStartup reads startup_config.json. A missing file yields the zero
// value.
func LoadStartup() (*StartupConfig, error) {
	path, err := startupConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &StartupConfig{}, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	var sc StartupConfig
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	return &sc, nil
}

// SaveStartup rewrites startup_config.json.
func SaveStartup(sc *StartupConfig) error {
	path, err := startupConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}
