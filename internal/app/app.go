package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/hashdeck/internal/channel"
	"github.com/zhubert/hashdeck/internal/config"
	"github.com/zhubert/hashdeck/internal/logger"
	"github.com/zhubert/hashdeck/internal/relay"
	"github.com/zhubert/hashdeck/internal/thread"
	"github.com/zhubert/hashdeck/internal/timeline"
	"github.com/zhubert/hashdeck/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// DefaultIdentity is used when no identity is configured at startup.
const DefaultIdentity = "local"

// Model is the main Bubble Tea model
type Model struct {
	config   *config.Config
	version  string // App version (injected at build time)
	identity string

	store   *channel.Store
	bridge  *timeline.Bridge
	overlay *thread.Overlay
	router  *Router
	relays  *relay.Config

	header      *ui.Header
	footer      *ui.Footer
	sidebar     *ui.Sidebar
	chat        *ui.Chat
	threadPanel *ui.ThreadPanel
	modal       *ui.Modal

	// Delivered messages per channel id, append-only in arrival order
	messages map[string][]timeline.Message

	width  int
	height int
	focus  Focus
	dirty  bool // channel state changed since the last save
	log    *slog.Logger
}

// IncomingMessageMsg delivers one stream message for the active identity.
type IncomingMessageMsg struct {
	Message timeline.Message
}

// channelsSavedMsg reports the outcome of a background channel-state save.
type channelsSavedMsg struct {
	Err error
}

// relaysSavedMsg reports the outcome of a background relay-config save.
type relaysSavedMsg struct {
	Err error
}

// New creates a new app model over loaded state. The channel lists come from
// the cache on disk; an identity with nothing persisted gets the default
// channel seeded.
func New(cfg *config.Config, startup *config.StartupConfig, lists map[string]*channel.List, relays *relay.Config, version string) *Model {
	identity := startup.Identity
	if identity == "" {
		identity = DefaultIdentity
	}

	bridge := timeline.NewBridge(relay.NewLogSubscriber())
	store := channel.NewStore(bridge)
	overlay := thread.NewOverlay()
	router := NewRouter(overlay, relay.NewLogPublisher())

	m := &Model{
		config:      cfg,
		version:     version,
		identity:    identity,
		store:       store,
		bridge:      bridge,
		overlay:     overlay,
		router:      router,
		relays:      relays,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		sidebar:     ui.NewSidebar(),
		chat:        ui.NewChat(cfg.GroupThreshold()),
		threadPanel: ui.NewThreadPanel(),
		modal:       ui.NewModal(),
		messages:    make(map[string][]timeline.Message),
		focus:       FocusSidebar,
		log:         logger.ComponentLogger("App"),
	}

	for user, list := range lists {
		if err := store.Restore(user, list); err != nil {
			m.log.Warn("Discarding invalid persisted channel list", "identity", user, "error", err)
		}
	}
	store.EnsureDefault(identity)
	store.SetPersistHook(func(string) { m.dirty = true })
	m.dirty = false

	m.chat.SetReactedFunc(router.Reacted)
	m.header.SetIdentity(identity)
	m.sidebar.SetFocused(true)

	m.refreshChannels()
	m.syncChat()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Identity returns the active identity.
func (m *Model) Identity() string {
	return m.identity
}

// selectedChannel returns the active identity's selected channel.
func (m *Model) selectedChannel() (*channel.Channel, bool) {
	return m.store.List(m.identity).SelectedChannel()
}

// refreshChannels pushes the store's current list into the sidebar and the
// header.
func (m *Model) refreshChannels() {
	list := m.store.List(m.identity)
	m.sidebar.SetChannels(list.Channels, list.Selected)

	name := ""
	if ch, ok := list.SelectedChannel(); ok {
		name = ch.Name
	}
	m.header.SetChannelName(name)
}

// syncChat points the chat panel at the selected channel's messages.
func (m *Model) syncChat() {
	ch, ok := m.selectedChannel()
	if !ok {
		m.chat.SetChannel("", nil)
		return
	}
	m.chat.SetChannel(ch.Name, m.messages[ch.ID])
}

// syncThread pushes the anchored note into the thread panel.
func (m *Model) syncThread() {
	anchor, ok := m.overlay.Anchor()
	if !ok {
		return
	}
	root, found := m.findMessage(anchor)
	if !found {
		root = timeline.Message{ID: anchor}
	}
	m.threadPanel.SetThread(root, nil)
}

func (m *Model) findMessage(noteID string) (timeline.Message, bool) {
	for _, msgs := range m.messages {
		for _, msg := range msgs {
			if msg.ID == noteID {
				return msg, true
			}
		}
	}
	return timeline.Message{}, false
}

// switcherRows builds the switcher's rows from the active identity's list.
func (m *Model) switcherRows() []ui.SwitcherRow {
	list := m.store.List(m.identity)
	rows := make([]ui.SwitcherRow, len(list.Channels))
	for i, ch := range list.Channels {
		rows[i] = ui.SwitcherRow{Index: i, Name: ch.Name, Unread: ch.UnreadCount}
	}
	return rows
}

// shortcutContext snapshots the surfaces the dispatcher cares about.
func (m *Model) shortcutContext() ShortcutContext {
	_, switcher := m.modal.State.(*ui.SwitcherState)
	return ShortcutContext{
		ThreadOpen:   m.overlay.IsOpen(),
		DialogOpen:   m.modal.IsVisible() && !switcher,
		SwitcherOpen: m.modal.IsVisible() && switcher,
	}
}

// saveChannelsCmd snapshots channel state and writes it in the background.
// Returns nil when nothing changed since the last save.
func (m *Model) saveChannelsCmd() tea.Cmd {
	if !m.dirty {
		return nil
	}
	m.dirty = false
	snapshot := m.store.Snapshot()
	return func() tea.Msg {
		return channelsSavedMsg{Err: config.SaveChannelLists(snapshot)}
	}
}

// saveRelaysCmd writes the relay set in the background.
func (m *Model) saveRelaysCmd() tea.Cmd {
	cfg := m.relays
	return func() tea.Msg {
		return relaysSavedMsg{Err: config.SaveRelays(cfg)}
	}
}

func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	panelHeight := m.height - ui.HeaderHeight - ui.FooterHeight
	chatWidth := m.width - ui.SidebarWidth
	if m.overlay.IsOpen() {
		chatWidth -= ui.ThreadPanelWidth
	}

	m.sidebar.SetSize(ui.SidebarWidth, panelHeight)
	m.chat.SetSize(chatWidth, panelHeight)
	m.threadPanel.SetSize(ui.ThreadPanelWidth, panelHeight)
}
