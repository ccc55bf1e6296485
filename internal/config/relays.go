package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zhubert/hashdeck/internal/errors"
	"github.com/zhubert/hashdeck/internal/logger"
	"github.com/zhubert/hashdeck/internal/relay"
)

const relayConfigFile = "relay_config.json"

// relayDoc is the on-disk shape of relay_config.json.
type relayDoc struct {
	Relays []string `json:"relays"`
}

func relayConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, relayConfigFile), nil
}

// LoadRelays reads the relay set from disk. A missing file yields the
// default relay set. URLs that fail validation are skipped with a warning
// instead of poisoning the whole document.
func LoadRelays() (*relay.Config, error) {
	path, err := relayConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return relay.DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	var doc relayDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg := relay.NewConfig()
	for _, url := range doc.Relays {
		if err := cfg.Add(url); err != nil {
			logger.Warn("Skipping invalid relay URL %q from %s: %v", url, path, err)
		}
	}
	return cfg, nil
}

// SaveRelays rewrites relay_config.json with the full current relay set.
func SaveRelays(cfg *relay.Config) error {
	path, err := relayConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(relayDoc{Relays: cfg.URLs()}, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}
