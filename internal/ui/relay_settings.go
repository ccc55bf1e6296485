package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/hashdeck/internal/keys"
)

// =============================================================================
// RelaySettingsState - State for the relay settings modal
// =============================================================================

// RelaySettingsState edits the relay set: existing relays appear as a
// multi-select (unchecked relays are removed on save) and a text input takes
// one new relay URL to add.
type RelaySettingsState struct {
	existing []string
	kept     []string
	newRelay string

	form *huh.Form
}

func (*RelaySettingsState) modalState() {}

func (s *RelaySettingsState) Title() string { return "Relays" }

func (s *RelaySettingsState) Help() string {
	return "Space: toggle  Tab: next field  Enter: save  Esc: cancel"
}

func (s *RelaySettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	helpView := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), helpView)
}

func (s *RelaySettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Kept returns the relays left checked.
func (s *RelaySettingsState) Kept() []string {
	return s.kept
}

// Removed returns the relays the user unchecked.
func (s *RelaySettingsState) Removed() []string {
	keptSet := make(map[string]struct{}, len(s.kept))
	for _, url := range s.kept {
		keptSet[url] = struct{}{}
	}
	var out []string
	for _, url := range s.existing {
		if _, ok := keptSet[url]; !ok {
			out = append(out, url)
		}
	}
	return out
}

// Added returns the new relay URL, if any was entered.
func (s *RelaySettingsState) Added() string {
	return strings.TrimSpace(s.newRelay)
}

// NewRelaySettingsState creates the relay settings form over the current set
func NewRelaySettingsState(relays []string) *RelaySettingsState {
	s := &RelaySettingsState{
		existing: relays,
		kept:     append([]string(nil), relays...),
	}

	options := make([]huh.Option[string], len(relays))
	for i, url := range relays {
		options[i] = huh.NewOption(url, url).Selected(true)
	}

	group := huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Configured relays").
			Options(options...).
			Height(len(options)).
			Value(&s.kept),
		huh.NewInput().
			Title("Add relay").
			Placeholder("wss://relay.example.com").
			CharLimit(ModalInputCharLimit).
			Value(&s.newRelay),
	)

	s.form = huh.NewForm(group).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

// initHuhForm initializes a huh form eagerly so it renders correctly
// immediately. Call this in every modal constructor after creating the form.
func initHuhForm(form *huh.Form) {
	form.Init()
}

// huhFormUpdate is the common Update logic for huh-based modals.
// It intercepts Enter and Escape (handled by the app-layer modal handlers)
// and delegates everything else to the huh form.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	form = m.(*huh.Form)
	return form, cmd
}

// ModalTheme returns a huh theme matching the modal color palette.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorText)

		t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
		t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(ColorSecondary).SetString("[x] ")
		t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)
		t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(ColorTextMuted).SetString("[ ] ")

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")

		t.Help = help.New().Styles

		return t
	})
}
