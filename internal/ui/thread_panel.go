package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/hashdeck/internal/keys"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// ThreadCloseRequestedMsg reports that the user dismissed the thread panel
// from inside it (the close control). The scrim click and the cancel key are
// handled at the app level; all three land on the same close path.
type ThreadCloseRequestedMsg struct{}

// ThreadPanel renders the open thread: the anchor note on top, replies
// below. It owns no thread state beyond presentation; the overlay slot in
// internal/thread decides whether a thread is open at all.
type ThreadPanel struct {
	root    timeline.Message
	replies []timeline.Message
	width   int
	height  int
}

// NewThreadPanel creates an empty panel.
func NewThreadPanel() *ThreadPanel {
	return &ThreadPanel{}
}

// SetSize sets the panel dimensions.
func (p *ThreadPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetThread replaces the rendered thread.
func (p *ThreadPanel) SetThread(root timeline.Message, replies []timeline.Message) {
	p.root = root
	p.replies = replies
}

// Left returns the column where the panel starts, given the screen width.
// Clicks left of this land on the scrim.
func (p *ThreadPanel) Left(screenWidth int) int {
	left := screenWidth - p.width
	if left < 0 {
		left = 0
	}
	return left
}

// Update handles key events while the thread panel is on top.
func (p *ThreadPanel) Update(msg tea.Msg) (*ThreadPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}
	switch keyMsg.String() {
	case "x", "q":
		return p, func() tea.Msg { return ThreadCloseRequestedMsg{} }
	case keys.Escape:
		// The app-level dispatcher normally consumes esc first; this is
		// the fallback when the panel is driven standalone.
		return p, func() tea.Msg { return ThreadCloseRequestedMsg{} }
	}
	return p, nil
}

// View renders the thread panel.
func (p *ThreadPanel) View() string {
	innerWidth := p.width - 4

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Thread"))
	b.WriteString("\n\n")

	header := ChatAuthorStyle.Render(p.root.Author) + " " +
		ChatTimestampStyle.Render(p.root.CreatedAt.Format("15:04"))
	b.WriteString(header)
	b.WriteString("\n")
	for _, line := range strings.Split(renderContent(p.root.Content), "\n") {
		b.WriteString(ThreadRootStyle.Render(ansi.Truncate(line, innerWidth, "…")))
		b.WriteString("\n")
	}

	if len(p.replies) == 0 {
		b.WriteString("\n")
		b.WriteString(ChatTimestampStyle.Render("No replies yet."))
	}
	for _, reply := range p.replies {
		b.WriteString("\n")
		b.WriteString(ThreadReplyStyle.Render(ChatAuthorStyle.Render(reply.Author)))
		for _, line := range strings.Split(renderContent(reply.Content), "\n") {
			b.WriteString("\n")
			b.WriteString(ThreadReplyStyle.Render(ansi.Truncate(line, innerWidth-2, "…")))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(ModalHelpStyle.Render("x: close  esc: close  click outside: close"))

	return ThreadPanelStyle.Width(p.width - 2).Height(p.height - 2).Render(clampHeight(b.String(), p.height-2))
}
