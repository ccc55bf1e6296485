// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/hashdeck/internal/logger"
)

// notifyFunc matches beeep.Notify and allows tests to intercept sends.
type notifyFunc func(title, message, icon string) error

// beeepNotify adapts beeep.Notify (whose icon parameter is typed any) to notifyFunc.
func beeepNotify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

var notify notifyFunc = beeepNotify

// SetNotifier replaces the underlying notification function. For tests.
func SetNotifier(fn func(title, message, icon string) error) {
	notify = fn
}

// ResetNotifier restores the default beeep-backed notifier.
func ResetNotifier() {
	notify = beeepNotify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ReactionFailed sends a notification that an outbound reaction could not be
// published to any relay.
func ReactionFailed(noteID string) error {
	return Send("Hashdeck", "Could not publish reaction for note "+noteID)
}
