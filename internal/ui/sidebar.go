package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/hashdeck/internal/channel"
	"github.com/zhubert/hashdeck/internal/keys"
)

// ChannelChosenMsg reports that the user committed to a channel in the
// sidebar (enter on the cursor row).
type ChannelChosenMsg struct {
	Index int
}

// FormatUnread renders an unread count as a badge string, capped at "99+".
// Zero counts render as an empty string.
func FormatUnread(count int) string {
	if count <= 0 {
		return ""
	}
	if count > UnreadBadgeCap {
		return fmt.Sprintf("%d+", UnreadBadgeCap)
	}
	return fmt.Sprintf("%d", count)
}

// Sidebar is the left panel listing the active identity's channels. The
// cursor is navigation-only; selection (and its unread side effects) only
// changes when the user commits with enter.
type Sidebar struct {
	channels  []channel.Channel
	selected  int // the store's selected index, -1 when none
	cursorIdx int
	width     int
	height    int
	focused   bool
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{selected: channel.NoSelection}
}

// SetSize sets the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width.
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state.
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetChannels replaces the channel rows and the store's selected index.
// The cursor follows the selection when it was out of range.
func (s *Sidebar) SetChannels(channels []channel.Channel, selected int) {
	s.channels = channels
	s.selected = selected
	if s.cursorIdx >= len(channels) {
		s.cursorIdx = len(channels) - 1
	}
	if s.cursorIdx < 0 {
		s.cursorIdx = 0
	}
}

// CursorIndex returns the row the navigation cursor is on.
func (s *Sidebar) CursorIndex() int {
	return s.cursorIdx
}

// Update handles key events while the sidebar is focused.
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.cursorIdx > 0 {
			s.cursorIdx--
		}
	case keys.Down, "j":
		if s.cursorIdx < len(s.channels)-1 {
			s.cursorIdx++
		}
	case keys.Home:
		s.cursorIdx = 0
	case keys.End:
		if len(s.channels) > 0 {
			s.cursorIdx = len(s.channels) - 1
		}
	case keys.Enter:
		if len(s.channels) > 0 {
			idx := s.cursorIdx
			return s, func() tea.Msg { return ChannelChosenMsg{Index: idx} }
		}
	}
	return s, nil
}

// View renders the channel list with unread badges.
func (s *Sidebar) View() string {
	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := s.width - 2  // border
	innerHeight := s.height - 2

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Channels"))
	b.WriteString("\n")

	if len(s.channels) == 0 {
		b.WriteString(SidebarTagStyle.Render(" No channels yet. ctrl+n to create one."))
	}

	rows := len(s.channels)
	if maxRows := innerHeight - 2; rows > maxRows && maxRows > 0 {
		rows = maxRows
	}
	for i := 0; i < rows; i++ {
		ch := s.channels[i]
		b.WriteString("\n")
		b.WriteString(s.renderRow(ch, i, innerWidth-2))
	}

	return style.Width(s.width - 2).Height(s.height - 2).Render(b.String())
}

// renderRow lays out one channel row: name on the left, unread badge pinned
// to the right edge, the name truncated to whatever width remains.
func (s *Sidebar) renderRow(ch channel.Channel, idx, width int) string {
	badge := FormatUnread(ch.UnreadCount)

	marker := "  "
	if idx == s.selected {
		marker = "# "
	}

	avail := width - runewidth.StringWidth(badge) - runewidth.StringWidth(marker) - 1
	if avail < 1 {
		avail = 1
	}
	name := ansi.Truncate(ch.Name, avail, "…")

	gap := width - runewidth.StringWidth(marker) - runewidth.StringWidth(name) - runewidth.StringWidth(badge)
	if gap < 1 {
		gap = 1
	}

	line := marker + name + strings.Repeat(" ", gap) + SidebarBadgeStyle.Render(badge)

	if idx == s.cursorIdx && s.focused {
		return SidebarSelectedStyle.Render(line)
	}
	if idx == s.selected {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(line)
	}
	return SidebarItemStyle.Render(line)
}
