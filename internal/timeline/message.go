// Package timeline models the shared message stream that channels filter:
// incoming messages, hashtag filters, relay subscription bookkeeping, and
// grouping of consecutive messages into render blocks.
package timeline

import "time"

// Message is a single note from the stream. Messages arrive from the relay
// collaborator and are treated as read-only once received.
type Message struct {
	ID        string
	Author    string
	CreatedAt time.Time
	Content   string
	Hashtags  []string
}
