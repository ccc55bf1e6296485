package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/hashdeck/internal/timeline"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()

	if m.IsVisible() {
		t.Error("new modal should be hidden")
	}

	m.Show(NewCreateChannelState())
	if !m.IsVisible() {
		t.Error("modal should be visible after Show")
	}

	m.SetError("boom")
	m.Hide()
	if m.IsVisible() || m.GetError() != "" {
		t.Error("Hide should clear state and error")
	}
}

func TestCreateChannelState_CollectsValues(t *testing.T) {
	s := NewCreateChannelState()

	for _, r := range "Food" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	for _, r := range "#food, cooking" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if s.GetName() != "Food" {
		t.Errorf("GetName() = %q, want Food", s.GetName())
	}
	tags := timeline.NormalizeHashtags(s.GetHashtags())
	if len(tags) != 2 || tags[0] != "food" || tags[1] != "cooking" {
		t.Errorf("normalized hashtags = %v, want [food cooking]", tags)
	}
}

func TestCreateChannelState_TabCyclesFocus(t *testing.T) {
	s := NewCreateChannelState()

	if s.Focus != 0 {
		t.Fatalf("initial focus = %d, want 0", s.Focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.Focus != 1 {
		t.Errorf("focus = %d, want 1 after tab", s.Focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.Focus != 0 {
		t.Errorf("focus = %d, want 0 after second tab", s.Focus)
	}
}

func TestEditChannelState_Prefilled(t *testing.T) {
	s := NewEditChannelState("c1", "Food", []string{"food", "cooking"})

	if s.ChannelID != "c1" {
		t.Errorf("ChannelID = %q, want c1", s.ChannelID)
	}
	if s.GetName() != "Food" {
		t.Errorf("GetName() = %q, want Food", s.GetName())
	}
	tags := timeline.NormalizeHashtags(s.GetHashtags())
	if len(tags) != 2 {
		t.Errorf("normalized hashtags = %v, want two tags", tags)
	}
}

func TestRelaySettingsState_TracksRemovalsAndAdds(t *testing.T) {
	s := NewRelaySettingsState([]string{"wss://a.test", "wss://b.test"})

	// Nothing touched: everything kept, nothing removed
	if got := s.Removed(); len(got) != 0 {
		t.Errorf("Removed() = %v, want empty", got)
	}

	s.kept = []string{"wss://b.test"}
	s.newRelay = " wss://c.test "

	removed := s.Removed()
	if len(removed) != 1 || removed[0] != "wss://a.test" {
		t.Errorf("Removed() = %v, want [wss://a.test]", removed)
	}
	if s.Added() != "wss://c.test" {
		t.Errorf("Added() = %q, want trimmed URL", s.Added())
	}
}
