package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/hashdeck/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// CreateChannelState - State for the create-channel dialog
// =============================================================================

type CreateChannelState struct {
	NameInput     textinput.Model
	HashtagsInput textinput.Model
	Focus         int // 0=name, 1=hashtags
}

func (*CreateChannelState) modalState() {}

func (s *CreateChannelState) Title() string { return "New Channel" }

func (s *CreateChannelState) Help() string {
	return "Tab: next field  Enter: create  Esc: cancel"
}

func (s *CreateChannelState) Render() string {
	return renderChannelForm(s.Title(), s.Help(), s.NameInput, s.HashtagsInput, s.Focus)
}

func (s *CreateChannelState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	focus, cmd := channelFormUpdate(&s.NameInput, &s.HashtagsInput, s.Focus, msg)
	s.Focus = focus
	return s, cmd
}

// GetName returns the entered channel name.
func (s *CreateChannelState) GetName() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// GetHashtags returns the entered hashtags, split on commas. Normalization
// happens in the channel store.
func (s *CreateChannelState) GetHashtags() []string {
	return strings.Split(s.HashtagsInput.Value(), ",")
}

// NewCreateChannelState creates a CreateChannelState with focused inputs
func NewCreateChannelState() *CreateChannelState {
	name := textinput.New()
	name.Placeholder = "Channel name"
	name.CharLimit = ModalInputCharLimit
	name.SetWidth(ModalInputWidth)
	name.Focus()

	tags := textinput.New()
	tags.Placeholder = "hashtags, comma, separated"
	tags.CharLimit = ModalInputCharLimit
	tags.SetWidth(ModalInputWidth)

	return &CreateChannelState{NameInput: name, HashtagsInput: tags}
}

// =============================================================================
// EditChannelState - State for the edit-channel dialog
// =============================================================================

type EditChannelState struct {
	ChannelID     string
	NameInput     textinput.Model
	HashtagsInput textinput.Model
	Focus         int
}

func (*EditChannelState) modalState() {}

func (s *EditChannelState) Title() string { return "Edit Channel" }

func (s *EditChannelState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *EditChannelState) Render() string {
	return renderChannelForm(s.Title(), s.Help(), s.NameInput, s.HashtagsInput, s.Focus)
}

func (s *EditChannelState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	focus, cmd := channelFormUpdate(&s.NameInput, &s.HashtagsInput, s.Focus, msg)
	s.Focus = focus
	return s, cmd
}

// GetName returns the edited channel name.
func (s *EditChannelState) GetName() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// GetHashtags returns the edited hashtags, split on commas.
func (s *EditChannelState) GetHashtags() []string {
	return strings.Split(s.HashtagsInput.Value(), ",")
}

// NewEditChannelState creates an EditChannelState prefilled from the channel
func NewEditChannelState(channelID, name string, hashtags []string) *EditChannelState {
	nameInput := textinput.New()
	nameInput.CharLimit = ModalInputCharLimit
	nameInput.SetWidth(ModalInputWidth)
	nameInput.SetValue(name)
	nameInput.Focus()

	tags := textinput.New()
	tags.CharLimit = ModalInputCharLimit
	tags.SetWidth(ModalInputWidth)
	tags.SetValue(strings.Join(hashtags, ", "))

	return &EditChannelState{ChannelID: channelID, NameInput: nameInput, HashtagsInput: tags}
}

// renderChannelForm lays out the shared name/hashtags form.
func renderChannelForm(title, help string, name, tags textinput.Model, focus int) string {
	titleView := ModalTitleStyle.Render(title)

	nameLabel := lipgloss.NewStyle().Foreground(ColorTextMuted).Render("Name:")
	tagsLabel := lipgloss.NewStyle().Foreground(ColorTextMuted).MarginTop(1).Render("Hashtags:")

	nameView := formFieldStyle(focus == 0).Render(name.View())
	tagsView := formFieldStyle(focus == 1).Render(tags.View())

	helpView := ModalHelpStyle.Render(help)

	return lipgloss.JoinVertical(lipgloss.Left, titleView, nameLabel, nameView, tagsLabel, tagsView, helpView)
}

func formFieldStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorPrimary).
			PaddingLeft(1)
	}
	return lipgloss.NewStyle().PaddingLeft(2)
}

// channelFormUpdate handles tab cycling and delegates typing to the focused
// input. Enter and Escape are left for the app-layer modal handlers.
func channelFormUpdate(name, tags *textinput.Model, focus int, msg tea.Msg) (int, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Tab, keys.ShiftTab, keys.Up, keys.Down:
			if focus == 0 {
				focus = 1
				name.Blur()
				tags.Focus()
			} else {
				focus = 0
				tags.Blur()
				name.Focus()
			}
			return focus, nil
		case keys.Enter, keys.Escape:
			return focus, nil
		}
	}

	var cmd tea.Cmd
	if focus == 0 {
		*name, cmd = name.Update(msg)
	} else {
		*tags, cmd = tags.Update(msg)
	}
	return focus, cmd
}
