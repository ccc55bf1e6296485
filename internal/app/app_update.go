package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/hashdeck/internal/keys"
	"github.com/zhubert/hashdeck/internal/timeline"
	"github.com/zhubert/hashdeck/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to the dispatcher, the router, and the panels.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Not a global shortcut; fall through to the active surface

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case ui.NoteActionMsg:
		cmd := m.router.Route(msg.Action)
		m.syncThread()
		m.updateSizes()
		return m, cmd

	case ReactionResultMsg:
		return m, m.router.HandleResult(msg)

	case ui.ChannelChosenMsg:
		return m.selectChannel(msg.Index)

	case ui.ThreadCloseRequestedMsg:
		m.overlay.Close()
		m.updateSizes()
		return m, nil

	case IncomingMessageMsg:
		return m.handleIncoming(msg.Message)

	case channelsSavedMsg:
		if msg.Err != nil {
			m.log.Error("Failed to save channel state", "error", msg.Err)
		}
		return m, nil

	case relaysSavedMsg:
		if msg.Err != nil {
			m.log.Error("Failed to save relay config", "error", msg.Err)
		}
		return m, nil
	}

	// The visible modal owns every key the dispatcher left alone
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Then the thread panel, then the focused pane
	if m.overlay.IsOpen() {
		panel, cmd := m.threadPanel.Update(msg)
		m.threadPanel = panel
		return m, cmd
	}

	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		return m, cmd
	}
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return m, cmd
}

// handleKeyPress runs the key through the shortcut dispatcher, then the
// modal enter handlers. A nil model result means the key was not consumed
// and should fall through to the active surface.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if action := Resolve(key, m.shortcutContext()); action != ShortcutNone {
		return m.applyShortcut(action)
	}

	if m.modal.IsVisible() && key == keys.Enter {
		return m.handleModalEnter()
	}

	return nil, nil
}

// applyShortcut executes a resolved shortcut action.
func (m *Model) applyShortcut(action ShortcutAction) (tea.Model, tea.Cmd) {
	switch action {
	case ShortcutCloseThread:
		m.overlay.Close()
		m.updateSizes()
		return m, nil

	case ShortcutCloseDialog, ShortcutCloseSwitcher:
		m.modal.Hide()
		return m, nil

	case ShortcutOpenCreateDialog:
		m.modal.Show(ui.NewCreateChannelState())
		return m, nil

	case ShortcutOpenSwitcher:
		m.modal.Show(ui.NewSwitcherState(m.switcherRows()))
		return m, nil

	case ShortcutOpenEditDialog:
		if ch, ok := m.selectedChannel(); ok {
			m.modal.Show(ui.NewEditChannelState(ch.ID, ch.Name, ch.Hashtags))
		}
		return m, nil

	case ShortcutDeleteChannel:
		return m.deleteSelected()

	case ShortcutOpenRelayDialog:
		m.modal.Show(ui.NewRelaySettingsState(m.relays.URLs()))
		return m, nil

	case ShortcutToggleFocus:
		if m.focus == FocusSidebar {
			m.focus = FocusChat
		} else {
			m.focus = FocusSidebar
		}
		m.sidebar.SetFocused(m.focus == FocusSidebar)
		m.chat.SetFocused(m.focus == FocusChat)
		return m, nil

	case ShortcutQuit:
		return m, tea.Quit
	}
	return m, nil
}

// handleModalEnter commits the visible modal.
func (m *Model) handleModalEnter() (tea.Model, tea.Cmd) {
	switch s := m.modal.State.(type) {
	case *ui.CreateChannelState:
		return m.submitCreate(s)
	case *ui.EditChannelState:
		return m.submitEdit(s)
	case *ui.SwitcherState:
		if row, ok := s.Current(); ok {
			m.modal.Hide()
			return m.selectChannel(row.Index)
		}
		return m, nil
	case *ui.RelaySettingsState:
		return m.submitRelays(s)
	}
	return m, nil
}

func (m *Model) submitCreate(s *ui.CreateChannelState) (tea.Model, tea.Cmd) {
	if _, err := m.store.Create(m.identity, s.GetName(), s.GetHashtags()); err != nil {
		m.modal.SetError(err.Error())
		return m, nil
	}
	m.modal.Hide()
	m.refreshChannels()
	m.syncChat()
	return m, m.saveChannelsCmd()
}

func (m *Model) submitEdit(s *ui.EditChannelState) (tea.Model, tea.Cmd) {
	if err := m.store.Edit(m.identity, s.ChannelID, s.GetName(), s.GetHashtags()); err != nil {
		m.modal.SetError(err.Error())
		return m, nil
	}
	m.modal.Hide()
	m.refreshChannels()
	m.syncChat()
	return m, m.saveChannelsCmd()
}

func (m *Model) submitRelays(s *ui.RelaySettingsState) (tea.Model, tea.Cmd) {
	if added := s.Added(); added != "" {
		if err := m.relays.Add(added); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
	}
	for _, url := range s.Removed() {
		m.relays.Remove(url)
	}
	m.modal.Hide()
	return m, m.saveRelaysCmd()
}

// selectChannel commits a channel selection, clearing its unread state.
func (m *Model) selectChannel(index int) (tea.Model, tea.Cmd) {
	if err := m.store.Select(m.identity, index); err != nil {
		m.log.Warn("Select failed", "index", index, "error", err)
		return m, nil
	}
	m.refreshChannels()
	m.syncChat()
	return m, m.saveChannelsCmd()
}

// deleteSelected removes the selected channel.
func (m *Model) deleteSelected() (tea.Model, tea.Cmd) {
	ch, ok := m.selectedChannel()
	if !ok {
		return m, nil
	}
	if err := m.store.Delete(m.identity, ch.ID); err != nil {
		m.log.Warn("Delete failed", "channelID", ch.ID, "error", err)
		return m, nil
	}
	delete(m.messages, ch.ID)
	m.refreshChannels()
	m.syncChat()
	return m, m.saveChannelsCmd()
}

// handleIncoming fans a delivered message out to every matching channel.
// Messages that match no channel are dropped.
func (m *Model) handleIncoming(msg timeline.Message) (tea.Model, tea.Cmd) {
	matched := m.store.MatchChannels(m.identity, msg.Hashtags)
	if len(matched) == 0 {
		m.log.Debug("Message matched no channel", "messageID", msg.ID)
		return m, nil
	}

	selected, hasSelected := m.selectedChannel()
	for _, channelID := range matched {
		m.store.RecordIncoming(m.identity, channelID, msg)
		m.messages[channelID] = append(m.messages[channelID], msg)
		if hasSelected && channelID == selected.ID {
			m.chat.Append(msg)
		}
	}

	m.refreshChannels()
	return m, m.saveChannelsCmd()
}

// handleMouseClick closes the thread when the click lands on the scrim left
// of the panel. Everything else is ignored.
func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.overlay.IsOpen() && msg.X < m.threadPanel.Left(m.width) {
		m.overlay.Close()
		m.updateSizes()
	}
	return m, nil
}
