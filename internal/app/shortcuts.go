package app

import (
	"github.com/zhubert/hashdeck/internal/keys"
)

// ShortcutContext is a snapshot of the surfaces that affect which shortcut a
// key resolves to. The dispatcher only looks at this snapshot, so resolution
// is a pure function of key plus context.
type ShortcutContext struct {
	ThreadOpen   bool
	DialogOpen   bool // create/edit/relay dialog, not the switcher
	SwitcherOpen bool
}

// ShortcutAction is what a resolved shortcut asks the model to do.
type ShortcutAction int

const (
	ShortcutNone ShortcutAction = iota
	ShortcutCloseThread
	ShortcutCloseDialog
	ShortcutCloseSwitcher
	ShortcutOpenCreateDialog
	ShortcutOpenSwitcher
	ShortcutOpenEditDialog
	ShortcutDeleteChannel
	ShortcutOpenRelayDialog
	ShortcutToggleFocus
	ShortcutQuit
)

// Shortcut binds a key to an action under a context condition.
type Shortcut struct {
	Key         string
	DisplayKey  string // display name in the footer/help; defaults to Key
	Description string
	Applies     func(ctx ShortcutContext) bool
	Action      ShortcutAction
}

func noModal(ctx ShortcutContext) bool {
	return !ctx.DialogOpen && !ctx.SwitcherOpen
}

// ShortcutRegistry is the central registry of global shortcuts, in priority
// order: the first entry whose key and condition match wins and consumes the
// key. Escape appears once per dismissable surface, so a single press closes
// exactly one thing; the thread entry outranks the dialog entries.
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.Escape,
		DisplayKey:  "Esc",
		Description: "Close thread",
		Applies:     func(ctx ShortcutContext) bool { return ctx.ThreadOpen },
		Action:      ShortcutCloseThread,
	},
	{
		Key:         keys.Escape,
		DisplayKey:  "Esc",
		Description: "Cancel dialog",
		Applies:     func(ctx ShortcutContext) bool { return ctx.DialogOpen },
		Action:      ShortcutCloseDialog,
	},
	{
		Key:         keys.Escape,
		DisplayKey:  "Esc",
		Description: "Close switcher",
		Applies:     func(ctx ShortcutContext) bool { return ctx.SwitcherOpen },
		Action:      ShortcutCloseSwitcher,
	},
	{
		Key:         keys.CtrlK,
		DisplayKey:  "Ctrl+K",
		Description: "Close switcher",
		Applies:     func(ctx ShortcutContext) bool { return ctx.SwitcherOpen },
		Action:      ShortcutCloseSwitcher,
	},
	{
		Key:         keys.CtrlN,
		DisplayKey:  "Ctrl+N",
		Description: "New channel",
		Applies:     noModal,
		Action:      ShortcutOpenCreateDialog,
	},
	{
		Key:         keys.CtrlK,
		DisplayKey:  "Ctrl+K",
		Description: "Switch channel",
		Applies:     noModal,
		Action:      ShortcutOpenSwitcher,
	},
	{
		Key:         keys.CtrlE,
		DisplayKey:  "Ctrl+E",
		Description: "Edit channel",
		Applies:     noModal,
		Action:      ShortcutOpenEditDialog,
	},
	{
		Key:         keys.CtrlD,
		DisplayKey:  "Ctrl+D",
		Description: "Delete channel",
		Applies:     noModal,
		Action:      ShortcutDeleteChannel,
	},
	{
		Key:         keys.CtrlR,
		DisplayKey:  "Ctrl+R",
		Description: "Relay settings",
		Applies:     noModal,
		Action:      ShortcutOpenRelayDialog,
	},
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Switch pane",
		Applies:     func(ctx ShortcutContext) bool { return noModal(ctx) && !ctx.ThreadOpen },
		Action:      ShortcutToggleFocus,
	},
	{
		Key:         "q",
		Description: "Quit",
		Applies:     func(ctx ShortcutContext) bool { return noModal(ctx) && !ctx.ThreadOpen },
		Action:      ShortcutQuit,
	},
}

// Resolve maps a key press to a shortcut action for the given context. It
// returns ShortcutNone when no registry entry matches; the caller then lets
// the key fall through to the active surface.
func Resolve(key string, ctx ShortcutContext) ShortcutAction {
	for _, sc := range ShortcutRegistry {
		if sc.Key == key && sc.Applies(ctx) {
			return sc.Action
		}
	}
	return ShortcutNone
}
