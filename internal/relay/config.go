// Package relay holds the relay URL set and the seam to the network
// collaborator that actually speaks the wire protocol.
package relay

import (
	"sort"
	"strings"

	"github.com/zhubert/hashdeck/internal/errors"
)

// DefaultRelays is the relay set used when nothing is configured.
var DefaultRelays = []string{
	"wss://relay.damus.io",
	"wss://relay.nostr.band",
	"wss://nos.lol",
}

// Config is a set of relay URLs. Membership is by exact trimmed URL.
type Config struct {
	relays map[string]struct{}
}

// NewConfig returns an empty relay set.
func NewConfig() *Config {
	return &Config{relays: make(map[string]struct{})}
}

// DefaultConfig returns a set holding the default relays.
func DefaultConfig() *Config {
	c := NewConfig()
	for _, url := range DefaultRelays {
		c.relays[url] = struct{}{}
	}
	return c
}

// Add inserts a relay URL. The URL must use a websocket scheme. Adding a
// relay already in the set is a no-op.
func (c *Config) Add(url string) error {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return errors.RelayURLInvalid(url)
	}
	c.relays[url] = struct{}{}
	return nil
}

// Remove drops a relay URL, reporting whether it was present.
func (c *Config) Remove(url string) bool {
	url = strings.TrimSpace(url)
	if _, ok := c.relays[url]; !ok {
		return false
	}
	delete(c.relays, url)
	return true
}

// Has reports whether the URL is in the set.
func (c *Config) Has(url string) bool {
	_, ok := c.relays[strings.TrimSpace(url)]
	return ok
}

// URLs returns the relay URLs in sorted order.
func (c *Config) URLs() []string {
	out := make([]string, 0, len(c.relays))
	for url := range c.relays {
		out = append(out, url)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of configured relays.
func (c *Config) Len() int {
	return len(c.relays)
}
