package relay

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zhubert/hashdeck/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	want := []string{
		"wss://nos.lol",
		"wss://relay.damus.io",
		"wss://relay.nostr.band",
	}
	if diff := cmp.Diff(want, c.URLs()); diff != "" {
		t.Errorf("default relays mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Add(t *testing.T) {
	c := NewConfig()

	if err := c.Add("wss://relay.example.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !c.Has("wss://relay.example.com") {
		t.Error("Has should report the added relay")
	}

	// Idempotent
	c.Add("wss://relay.example.com")
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after duplicate add", c.Len())
	}
}

func TestConfig_Add_TrimsWhitespace(t *testing.T) {
	c := NewConfig()

	if err := c.Add("  wss://relay.example.com  "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !c.Has("wss://relay.example.com") {
		t.Error("trimmed URL should be stored")
	}
}

func TestConfig_Add_RejectsNonWebsocketSchemes(t *testing.T) {
	c := NewConfig()

	for _, url := range []string{"https://relay.example.com", "relay.example.com", ""} {
		if err := c.Add(url); !errors.Is(err, errors.KindInvalid) {
			t.Errorf("Add(%q): expected KindInvalid, got %v", url, err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after rejected adds", c.Len())
	}
}

func TestConfig_Remove(t *testing.T) {
	c := NewConfig()
	c.Add("ws://local.test")

	if !c.Remove("ws://local.test") {
		t.Error("Remove should report true for a present relay")
	}
	if c.Remove("ws://local.test") {
		t.Error("Remove should report false for an absent relay")
	}
}

func TestLogPublisher_PublishReaction(t *testing.T) {
	p := NewLogPublisher()

	if err := p.PublishReaction(context.Background(), "note-1"); err != nil {
		t.Errorf("PublishReaction: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.PublishReaction(ctx, "note-2"); err == nil {
		t.Error("cancelled context should surface an error")
	}
}
