package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zhubert/hashdeck/internal/channel"
	"github.com/zhubert/hashdeck/internal/errors"
)

const channelsCacheFile = "channels_cache.json"

// channelsDoc is the on-disk shape of channels_cache.json: every identity's
// channel list, keyed by identity.
type channelsDoc struct {
	Users map[string]*channel.List `json:"users"`
}

func channelsCachePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, channelsCacheFile), nil
}

// LoadChannelLists reads every identity's channel list from disk. A missing
// file yields an empty map. Each list is validated; a corrupt document is an
// error rather than a partial load.
func LoadChannelLists() (map[string]*channel.List, error) {
	path, err := channelsCachePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]*channel.List{}, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	var doc channelsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	if doc.Users == nil {
		doc.Users = map[string]*channel.List{}
	}

	for identity, list := range doc.Users {
		if err := list.Validate(); err != nil {
			return nil, errors.ConfigInvalid("channel list for " + identity + ": " + err.Error())
		}
	}

	return doc.Users, nil
}

// SaveChannelLists rewrites channels_cache.json with the full current state.
func SaveChannelLists(lists map[string]*channel.List) error {
	path, err := channelsCachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	doc := channelsDoc{Users: lists}
	if doc.Users == nil {
		doc.Users = map[string]*channel.List{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}
