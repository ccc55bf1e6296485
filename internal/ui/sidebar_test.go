package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/hashdeck/internal/channel"
)

func keyPress(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testChannels() []channel.Channel {
	return []channel.Channel{
		{ID: "c1", Name: "General", Hashtags: []string{"general"}},
		{ID: "c2", Name: "Food", Hashtags: []string{"food"}, UnreadCount: 3},
		{ID: "c3", Name: "Travel", Hashtags: []string{"travel"}, UnreadCount: 250},
	}
}

func TestFormatUnread(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, ""},
		{-2, ""},
		{1, "1"},
		{99, "99"},
		{100, "99+"},
		{2500, "99+"},
	}

	for _, tt := range tests {
		if got := FormatUnread(tt.count); got != tt.expected {
			t.Errorf("FormatUnread(%d) = %q, want %q", tt.count, got, tt.expected)
		}
	}
}

func TestSidebar_CursorNavigation(t *testing.T) {
	s := NewSidebar()
	s.SetChannels(testChannels(), 0)
	s.SetFocused(true)

	s.Update(keyPress('j'))
	if s.CursorIndex() != 1 {
		t.Errorf("cursor = %d, want 1 after j", s.CursorIndex())
	}

	s.Update(keyPress('j'))
	s.Update(keyPress('j')) // bottom; must not overrun
	if s.CursorIndex() != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", s.CursorIndex())
	}

	s.Update(keyPress('k'))
	if s.CursorIndex() != 1 {
		t.Errorf("cursor = %d, want 1 after k", s.CursorIndex())
	}
}

func TestSidebar_EnterEmitsChosenChannel(t *testing.T) {
	s := NewSidebar()
	s.SetChannels(testChannels(), 0)
	s.Update(keyPress('j'))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	msg, ok := cmd().(ChannelChosenMsg)
	if !ok {
		t.Fatalf("expected ChannelChosenMsg, got %T", cmd())
	}
	if msg.Index != 1 {
		t.Errorf("chosen index = %d, want 1", msg.Index)
	}
}

func TestSidebar_EnterOnEmptyListEmitsNothing(t *testing.T) {
	s := NewSidebar()
	s.SetChannels(nil, channel.NoSelection)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter with no channels should not emit")
	}
}

func TestSidebar_CursorClampsWhenChannelsShrink(t *testing.T) {
	s := NewSidebar()
	s.SetChannels(testChannels(), 0)
	s.Update(keyPress('j'))
	s.Update(keyPress('j'))

	s.SetChannels(testChannels()[:1], 0)
	if s.CursorIndex() != 0 {
		t.Errorf("cursor = %d, want 0 after shrink", s.CursorIndex())
	}
}
