package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/hashdeck/internal/keys"
)

// =============================================================================
// SwitcherState - State for the quick channel switcher
// =============================================================================

// SwitcherRow is one selectable channel in the switcher. Index refers back
// to the channel's position in the full list, surviving filtering.
type SwitcherRow struct {
	Index  int
	Name   string
	Unread int
}

type SwitcherState struct {
	Input         textinput.Model
	Rows          []SwitcherRow
	SelectedIndex int // index into the filtered rows
	ScrollOffset  int
}

func (*SwitcherState) modalState() {}

func (s *SwitcherState) Title() string { return "Switch Channel" }

func (s *SwitcherState) Help() string {
	if len(s.Filtered()) == 0 && s.Input.Value() != "" {
		return "No matches. Esc: close"
	}
	return "Type to filter  up/down: navigate  Enter: switch  Esc: close"
}

// Filtered returns the rows whose name contains the query, case-insensitive.
// An empty query keeps every row.
func (s *SwitcherState) Filtered() []SwitcherRow {
	query := strings.ToLower(strings.TrimSpace(s.Input.Value()))
	if query == "" {
		return s.Rows
	}
	var out []SwitcherRow
	for _, row := range s.Rows {
		if strings.Contains(strings.ToLower(row.Name), query) {
			out = append(out, row)
		}
	}
	return out
}

// Current returns the highlighted row.
func (s *SwitcherState) Current() (SwitcherRow, bool) {
	rows := s.Filtered()
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(rows) {
		return SwitcherRow{}, false
	}
	return rows[s.SelectedIndex], true
}

func (s *SwitcherState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	inputView := formFieldStyle(true).Render(s.Input.View())

	rows := s.Filtered()
	var list string
	if len(rows) == 0 {
		list = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("No channels match")
	} else {
		visibleEnd := s.ScrollOffset + SwitcherMaxVisible
		if visibleEnd > len(rows) {
			visibleEnd = len(rows)
		}
		var b strings.Builder
		for i := s.ScrollOffset; i < visibleEnd; i++ {
			row := rows[i]
			line := row.Name
			if badge := FormatUnread(row.Unread); badge != "" {
				line = fmt.Sprintf("%s  %s", line, SidebarBadgeStyle.Render(badge))
			}
			prefix := "  "
			style := SidebarItemStyle
			if i == s.SelectedIndex {
				prefix = "> "
				style = SidebarSelectedStyle
			}
			b.WriteString("\n")
			b.WriteString(style.Render(prefix + line))
		}
		list = b.String()
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, inputView, list, help)
}

func (s *SwitcherState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up:
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
				if s.SelectedIndex < s.ScrollOffset {
					s.ScrollOffset = s.SelectedIndex
				}
			}
			return s, nil
		case keys.Down:
			if s.SelectedIndex < len(s.Filtered())-1 {
				s.SelectedIndex++
				if s.SelectedIndex >= s.ScrollOffset+SwitcherMaxVisible {
					s.ScrollOffset = s.SelectedIndex - SwitcherMaxVisible + 1
				}
			}
			return s, nil
		case keys.Enter, keys.Escape:
			// Handled by the app-layer modal handlers
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.Input.Value()
	s.Input, cmd = s.Input.Update(msg)
	if s.Input.Value() != before {
		// The filter changed; keep the highlight in range
		s.SelectedIndex = 0
		s.ScrollOffset = 0
	}
	return s, cmd
}

// NewSwitcherState creates a switcher over the given rows
func NewSwitcherState(rows []SwitcherRow) *SwitcherState {
	ti := textinput.New()
	ti.Placeholder = "filter channels..."
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &SwitcherState{Input: ti, Rows: rows}
}
