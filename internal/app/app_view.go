package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

// RenderToString renders the current view as a string. Useful for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}

func (m *Model) render() string {
	ctx := m.shortcutContext()
	m.footer.SetContext(ctx.ThreadOpen, ctx.DialogOpen, ctx.SwitcherOpen)

	header := m.header.View()
	footer := m.footer.View()

	columns := []string{m.sidebar.View(), m.chat.View()}
	if m.overlay.IsOpen() {
		columns = append(columns, m.threadPanel.View())
	}
	panels := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return view
}
