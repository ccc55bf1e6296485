// Package thread tracks the single thread overlay slot: at most one thread
// is open at a time, anchored to the note that opened it.
package thread

import (
	"log/slog"

	"github.com/zhubert/hashdeck/internal/logger"
)

// Overlay is the thread panel state machine: closed, or open on one anchor
// note. Opening while open replaces the anchor; there is no thread stack.
// The overlay never mutates anything outside itself.
type Overlay struct {
	open   bool
	anchor string
	log    *slog.Logger
}

// NewOverlay returns a closed overlay.
func NewOverlay() *Overlay {
	return &Overlay{log: logger.ComponentLogger("ThreadOverlay")}
}

// Open shows the thread anchored at the given note, replacing any thread
// already showing.
func (o *Overlay) Open(noteID string) {
	if o.open && o.anchor != noteID {
		o.log.Debug("Replacing thread anchor", "old", o.anchor, "new", noteID)
	}
	o.open = true
	o.anchor = noteID
}

// Close hides the overlay. Closing a closed overlay is a no-op; every
// dismiss path (close key, dismiss control, scrim click) funnels here.
func (o *Overlay) Close() {
	o.open = false
	o.anchor = ""
}

// IsOpen reports whether a thread is showing.
func (o *Overlay) IsOpen() bool {
	return o.open
}

// Anchor returns the note the open thread is rooted at.
func (o *Overlay) Anchor() (string, bool) {
	if !o.open {
		return "", false
	}
	return o.anchor, true
}
