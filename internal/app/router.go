package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/hashdeck/internal/logger"
	"github.com/zhubert/hashdeck/internal/notification"
	"github.com/zhubert/hashdeck/internal/relay"
	"github.com/zhubert/hashdeck/internal/thread"
	"github.com/zhubert/hashdeck/internal/ui"
)

// MaxReactionAttempts is how many times a reaction publish is tried before
// the optimistic mark is rolled back.
const MaxReactionAttempts = 3

// ReactionResultMsg reports one publish attempt for a reaction.
type ReactionResultMsg struct {
	NoteID string
	Err    error
}

// Router resolves note actions emitted by the chat surface. Thread-shaped
// actions land on the overlay slot; reactions are marked optimistically and
// reconciled against publish results, rolling back after the retry budget is
// spent.
type Router struct {
	overlay   *thread.Overlay
	publisher relay.Publisher
	notify    func(noteID string) error

	reacted  map[string]struct{}
	attempts map[string]int
	log      *slog.Logger
}

// NewRouter creates a router over the overlay slot and publisher.
func NewRouter(overlay *thread.Overlay, publisher relay.Publisher) *Router {
	return &Router{
		overlay:   overlay,
		publisher: publisher,
		notify:    notification.ReactionFailed,
		reacted:   make(map[string]struct{}),
		attempts:  make(map[string]int),
		log:       logger.ComponentLogger("ActionRouter"),
	}
}

// SetNotifier replaces the failure notifier. For tests.
func (r *Router) SetNotifier(fn func(noteID string) error) {
	r.notify = fn
}

// Reacted reports whether the note carries the local reaction mark.
func (r *Router) Reacted(noteID string) bool {
	_, ok := r.reacted[noteID]
	return ok
}

// Route handles one note action. Unknown kinds are dropped; the enum is
// closed but newer surfaces may still emit something we don't speak.
func (r *Router) Route(action ui.NoteAction) tea.Cmd {
	switch action.Kind {
	case ui.NoteActionOpenThread, ui.NoteActionReply, ui.NoteActionRepost:
		// Reply and repost start from the thread view of the note;
		// composition happens there.
		r.log.Debug("Opening thread", "action", action.Kind.String(), "noteID", action.NoteID)
		r.overlay.Open(action.NoteID)
		return nil

	case ui.NoteActionReact:
		return r.react(action.NoteID)

	case ui.NoteActionSelectProfile:
		r.log.Debug("Profile selected", "profile", action.Profile)
		return nil

	default:
		r.log.Warn("Dropping unknown note action", "kind", int(action.Kind), "noteID", action.NoteID)
		return nil
	}
}

// react applies the optimistic mark and fires the first publish attempt.
// Reacting to an already-marked note is a no-op.
func (r *Router) react(noteID string) tea.Cmd {
	if noteID == "" {
		return nil
	}
	if _, ok := r.reacted[noteID]; ok {
		return nil
	}
	r.reacted[noteID] = struct{}{}
	r.attempts[noteID] = 0
	r.log.Info("Reaction marked", "noteID", noteID)
	return r.publishCmd(noteID)
}

// HandleResult reconciles a publish attempt. Failures retry until the budget
// runs out, then the mark is rolled back and the user is notified.
func (r *Router) HandleResult(msg ReactionResultMsg) tea.Cmd {
	if msg.Err == nil {
		delete(r.attempts, msg.NoteID)
		r.log.Debug("Reaction published", "noteID", msg.NoteID)
		return nil
	}

	attempt := r.attempts[msg.NoteID] + 1
	r.attempts[msg.NoteID] = attempt
	if attempt < MaxReactionAttempts {
		r.log.Warn("Reaction publish failed, retrying", "noteID", msg.NoteID, "attempt", attempt, "error", msg.Err)
		return r.publishCmd(msg.NoteID)
	}

	delete(r.reacted, msg.NoteID)
	delete(r.attempts, msg.NoteID)
	r.log.Error("Reaction publish failed, rolling back", "noteID", msg.NoteID, "attempts", attempt, "error", msg.Err)

	noteID := msg.NoteID
	notify := r.notify
	return func() tea.Msg {
		notify(noteID)
		return nil
	}
}

func (r *Router) publishCmd(noteID string) tea.Cmd {
	publisher := r.publisher
	return func() tea.Msg {
		err := publisher.PublishReaction(context.Background(), noteID)
		return ReactionResultMsg{NoteID: noteID, Err: err}
	}
}
