package ui

// Layout dimensions
const (
	// SidebarWidth is the fixed width of the channel sidebar
	SidebarWidth = 28

	// ThreadPanelWidth is the width of the thread overlay panel
	ThreadPanelWidth = 44

	// HeaderHeight and FooterHeight are single rows
	HeaderHeight = 1
	FooterHeight = 1
)

// Modal dimensions
const (
	ModalWidth          = 60
	ModalInputWidth     = 50
	ModalInputCharLimit = 200

	// SwitcherMaxVisible caps the channel rows shown in the quick switcher
	SwitcherMaxVisible = 8
)

// UnreadBadgeCap is the largest count rendered exactly; anything above shows
// as "99+".
const UnreadBadgeCap = 99
