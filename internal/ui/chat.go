package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/hashdeck/internal/keys"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// Chat is the center panel: the selected channel's messages, grouped into
// author blocks. The cursor moves per message; note actions are emitted as
// NoteActionMsg for the app router to resolve.
type Chat struct {
	channelName string
	messages    []timeline.Message
	grouper     timeline.Grouper
	cursorIdx   int
	width       int
	height      int
	focused     bool
	reacted     func(noteID string) bool
}

// NewChat creates an empty chat panel with the given grouping threshold.
func NewChat(threshold time.Duration) *Chat {
	return &Chat{grouper: timeline.NewGrouper(threshold)}
}

// SetSize sets the panel dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetFocused sets the focus state.
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state.
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetReactedFunc wires the lookup for the local "reacted" mark so reacted
// notes render with their indicator.
func (c *Chat) SetReactedFunc(fn func(noteID string) bool) {
	c.reacted = fn
}

// SetChannel replaces the view with another channel's messages. Grouping
// state never survives a channel switch; the cursor lands on the newest
// message.
func (c *Chat) SetChannel(name string, msgs []timeline.Message) {
	c.channelName = name
	c.messages = msgs
	c.cursorIdx = len(msgs) - 1
	if c.cursorIdx < 0 {
		c.cursorIdx = 0
	}
}

// Append adds a newly delivered message to the view.
func (c *Chat) Append(msg timeline.Message) {
	atTail := c.cursorIdx == len(c.messages)-1
	c.messages = append(c.messages, msg)
	if atTail {
		c.cursorIdx = len(c.messages) - 1
	}
}

// CursorMessage returns the message under the cursor.
func (c *Chat) CursorMessage() (timeline.Message, bool) {
	if c.cursorIdx < 0 || c.cursorIdx >= len(c.messages) {
		return timeline.Message{}, false
	}
	return c.messages[c.cursorIdx], true
}

// Update handles key events while the chat panel is focused.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if c.cursorIdx > 0 {
			c.cursorIdx--
		}
	case keys.Down, "j":
		if c.cursorIdx < len(c.messages)-1 {
			c.cursorIdx++
		}
	case keys.Home:
		c.cursorIdx = 0
	case keys.End:
		if len(c.messages) > 0 {
			c.cursorIdx = len(c.messages) - 1
		}
	case keys.Enter:
		return c, c.emit(NoteActionOpenThread)
	case "r":
		return c, c.emit(NoteActionReact)
	case "y":
		return c, c.emit(NoteActionReply)
	case "p":
		return c, c.emit(NoteActionRepost)
	case "u":
		if m, ok := c.CursorMessage(); ok {
			action := NoteAction{Kind: NoteActionSelectProfile, NoteID: m.ID, Profile: m.Author}
			return c, func() tea.Msg { return NoteActionMsg{Action: action} }
		}
	}
	return c, nil
}

func (c *Chat) emit(kind NoteActionKind) tea.Cmd {
	m, ok := c.CursorMessage()
	if !ok {
		return nil
	}
	action := NoteAction{Kind: kind, NoteID: m.ID}
	return func() tea.Msg { return NoteActionMsg{Action: action} }
}

// View renders the grouped messages.
func (c *Chat) View() string {
	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	innerWidth := c.width - 4

	var b strings.Builder
	title := c.channelName
	if title == "" {
		title = "No channel selected"
	}
	b.WriteString(PanelTitleStyle.Render(title))
	b.WriteString("\n")

	if len(c.messages) == 0 {
		b.WriteString(ChatTimestampStyle.Render(" Nothing here yet."))
	}

	byID := make(map[string]timeline.Message, len(c.messages))
	indexByID := make(map[string]int, len(c.messages))
	for i, m := range c.messages {
		byID[m.ID] = m
		indexByID[m.ID] = i
	}

	for block := range c.grouper.Blocks(c.messages) {
		if block.ShowHeader {
			b.WriteString("\n")
			header := ChatAuthorStyle.Render(block.Author) + " " +
				ChatTimestampStyle.Render(block.FirstTimestamp.Format("15:04"))
			b.WriteString(header)
		}
		for _, id := range block.MessageIDs {
			m := byID[id]
			b.WriteString("\n")
			b.WriteString(c.renderMessage(m, indexByID[id] == c.cursorIdx, innerWidth))
		}
	}

	body := b.String()
	return style.Width(c.width - 2).Height(c.height - 2).Render(clampHeight(body, c.height-2))
}

func (c *Chat) renderMessage(m timeline.Message, selected bool, width int) string {
	content := renderContent(m.Content)

	mark := "  "
	if c.reacted != nil && c.reacted(m.ID) {
		mark = ChatReactedStyle.Render("♥ ")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		prefix := "  "
		if i == 0 {
			prefix = mark
		}
		line = prefix + line
		if selected && c.focused {
			line = ChatSelectedStyle.Render(ansi.Truncate(line, width, "…"))
		} else {
			line = ChatMessageStyle.Render(ansi.Truncate(line, width, "…"))
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// clampHeight keeps the newest rows visible when the body overflows.
func clampHeight(body string, height int) string {
	if height <= 0 {
		return body
	}
	lines := strings.Split(body, "\n")
	if len(lines) <= height {
		return body
	}
	return strings.Join(lines[len(lines)-height:], "\n")
}
