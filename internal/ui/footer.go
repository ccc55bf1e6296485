package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	threadOpen   bool
	modalOpen    bool
	switcherOpen bool
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(threadOpen, modalOpen, switcherOpen bool) {
	f.threadOpen = threadOpen
	f.modalOpen = modalOpen
	f.switcherOpen = switcherOpen
}

// bindings returns the keybindings for the current context
func (f *Footer) bindings() []KeyBinding {
	switch {
	case f.threadOpen:
		return []KeyBinding{
			{Key: "esc", Desc: "close thread"},
		}
	case f.switcherOpen:
		return []KeyBinding{
			{Key: "enter", Desc: "switch"},
			{Key: "esc", Desc: "close"},
		}
	case f.modalOpen:
		return []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	default:
		return []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new channel"},
			{Key: "ctrl+k", Desc: "switcher"},
			{Key: "ctrl+e", Desc: "edit"},
			{Key: "ctrl+d", Desc: "delete"},
			{Key: "ctrl+r", Desc: "relays"},
			{Key: "enter", Desc: "thread"},
			{Key: "r", Desc: "react"},
			{Key: "q", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+" "+FooterDescStyle.Render(b.Desc))
	}
	line := strings.Join(parts, "  ")
	line = ansi.Truncate(line, f.width-2, "…")
	return FooterStyle.Width(f.width).Render(line)
}
