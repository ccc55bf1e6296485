// Package channel holds the per-identity channel lists: named hashtag views
// over the shared timeline, with selection and unread tracking.
package channel

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/hashdeck/internal/errors"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// DefaultChannelName and DefaultChannelTag seed the list for an identity
// that has nothing persisted yet.
const (
	DefaultChannelName = "General"
	DefaultChannelTag  = "general"
)

// Channel is a named view over the timeline, filtered by a hashtag set.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Hashtags    []string  `json:"hashtags"`
	Subscribed  bool      `json:"subscribed"`
	UnreadCount int       `json:"unread_count"`
	LastRead    time.Time `json:"last_read"`
}

// New validates and builds a channel. The name must be non-empty after
// trimming and the hashtags non-empty after normalization.
func New(name string, hashtags []string) (Channel, error) {
	name = trimName(name)
	if name == "" {
		return Channel{}, errors.ChannelNameEmpty()
	}
	tags := timeline.NormalizeHashtags(hashtags)
	if len(tags) == 0 {
		return Channel{}, errors.ChannelHashtagsEmpty()
	}
	return Channel{
		ID:       uuid.NewString(),
		Name:     name,
		Hashtags: tags,
	}, nil
}

// HasHashtag reports whether the channel tracks the given normalized tag.
func (c Channel) HasHashtag(tag string) bool {
	for _, t := range c.Hashtags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether a message carrying the given hashtags belongs in
// this channel (any overlap between the sets).
func (c Channel) Matches(hashtags []string) bool {
	for _, tag := range timeline.NormalizeHashtags(hashtags) {
		if c.HasHashtag(tag) {
			return true
		}
	}
	return false
}

// NoSelection marks a list with no selected channel.
const NoSelection = -1

// List is one identity's ordered channels plus the selection cursor.
type List struct {
	Channels []Channel `json:"channels"`
	Selected int       `json:"selected"`
}

// NewList returns an empty list with nothing selected.
func NewList() *List {
	return &List{Selected: NoSelection}
}

// SelectedChannel returns the selected channel, if any.
func (l *List) SelectedChannel() (*Channel, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Channels) {
		return nil, false
	}
	return &l.Channels[l.Selected], true
}

// IndexByID returns the position of the channel with the given id, or -1.
func (l *List) IndexByID(id string) int {
	for i := range l.Channels {
		if l.Channels[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the list invariants: unique channel ids, a selection that
// is either NoSelection or in range, and no channel without hashtags.
func (l *List) Validate() error {
	seen := make(map[string]struct{}, len(l.Channels))
	for _, ch := range l.Channels {
		if ch.ID == "" {
			return errors.ConfigInvalid("channel with empty id")
		}
		if _, dup := seen[ch.ID]; dup {
			return errors.ConfigInvalid("duplicate channel id " + ch.ID)
		}
		seen[ch.ID] = struct{}{}
		if len(timeline.NormalizeHashtags(ch.Hashtags)) == 0 {
			return errors.ConfigInvalid("channel " + ch.Name + " has no hashtags")
		}
	}
	if l.Selected != NoSelection && (l.Selected < 0 || l.Selected >= len(l.Channels)) {
		return errors.ConfigInvalid("selected index out of range")
	}
	return nil
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}
