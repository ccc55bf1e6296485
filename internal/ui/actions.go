package ui

// NoteActionKind enumerates what a user can do to a rendered note. The set
// is closed: anything a newer surface emits that we don't know lands on
// NoteActionUnknown and is ignored by the router.
type NoteActionKind int

const (
	NoteActionUnknown NoteActionKind = iota
	NoteActionOpenThread
	NoteActionReact
	NoteActionReply
	NoteActionRepost
	NoteActionSelectProfile
)

func (k NoteActionKind) String() string {
	switch k {
	case NoteActionOpenThread:
		return "open-thread"
	case NoteActionReact:
		return "react"
	case NoteActionReply:
		return "reply"
	case NoteActionRepost:
		return "repost"
	case NoteActionSelectProfile:
		return "select-profile"
	default:
		return "unknown"
	}
}

// NoteAction is one user interaction with a note.
type NoteAction struct {
	Kind    NoteActionKind
	NoteID  string
	Profile string // set for NoteActionSelectProfile
}

// NoteActionMsg carries a note action from a widget up to the app router.
type NoteActionMsg struct {
	Action NoteAction
}
