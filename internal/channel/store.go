package channel

import (
	"log/slog"
	"sort"
	"time"

	"github.com/zhubert/hashdeck/internal/errors"
	"github.com/zhubert/hashdeck/internal/logger"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// Store owns the channel lists for every identity seen this run. Lists are
// created lazily per identity and never merged. All mutation happens on the
// UI goroutine; the store is not safe for concurrent use.
type Store struct {
	byUser  map[string]*List
	bridge  *timeline.Bridge
	now     func() time.Time
	persist func(identity string)
	log     *slog.Logger
}

// NewStore creates a store wired to the subscription bridge. The bridge may
// be nil in tests that don't care about subscriptions.
func NewStore(bridge *timeline.Bridge) *Store {
	return &Store{
		byUser: make(map[string]*List),
		bridge: bridge,
		now:    time.Now,
		log:    logger.ComponentLogger("ChannelStore"),
	}
}

// SetPersistHook registers the callback fired after any mutation, with the
// identity whose list changed. Persistence failures are the hook's problem;
// the in-memory state stays authoritative.
func (s *Store) SetPersistHook(fn func(identity string)) {
	s.persist = fn
}

// SetClock overrides the time source. For tests.
func (s *Store) SetClock(fn func() time.Time) {
	s.now = fn
}

// List returns the identity's list, creating an empty one on first touch.
func (s *Store) List(user string) *List {
	l, ok := s.byUser[user]
	if !ok {
		l = NewList()
		s.byUser[user] = l
	}
	return l
}

// Identities returns every identity with a list, sorted for determinism.
func (s *Store) Identities() []string {
	out := make([]string, 0, len(s.byUser))
	for id := range s.byUser {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// EnsureDefault seeds the identity's list with the General channel when
// nothing is persisted for it. Existing lists are left alone.
func (s *Store) EnsureDefault(user string) {
	l := s.List(user)
	if len(l.Channels) > 0 {
		return
	}
	if _, err := s.Create(user, DefaultChannelName, []string{DefaultChannelTag}); err != nil {
		s.log.Error("Failed to seed default channel", "identity", user, "error", err)
	}
}

// Create validates, appends, and subscribes a new channel. When the list was
// empty the new channel becomes selected; otherwise the selection is
// unchanged so its unread semantics stay intact.
func (s *Store) Create(user, name string, hashtags []string) (*Channel, error) {
	ch, err := New(name, hashtags)
	if err != nil {
		return nil, err
	}

	l := s.List(user)
	wasEmpty := len(l.Channels) == 0

	ch.Subscribed = s.subscribe(ch.ID, ch.Hashtags)
	l.Channels = append(l.Channels, ch)
	if wasEmpty {
		l.Selected = 0
		l.Channels[0].LastRead = s.now()
	}

	s.log.Info("Channel created", "identity", user, "channelID", ch.ID, "name", ch.Name, "hashtags", ch.Hashtags)
	s.changed(user)
	return &l.Channels[len(l.Channels)-1], nil
}

// Select moves the selection cursor, clears the target's unread count, and
// stamps its last-read time. Other channels are untouched.
func (s *Store) Select(user string, index int) error {
	l := s.List(user)
	if index < 0 || index >= len(l.Channels) {
		return errors.ChannelIndexOutOfRange(index, len(l.Channels))
	}
	l.Selected = index
	l.Channels[index].UnreadCount = 0
	l.Channels[index].LastRead = s.now()

	s.log.Debug("Channel selected", "identity", user, "index", index, "name", l.Channels[index].Name)
	s.changed(user)
	return nil
}

// RecordIncoming counts a delivered message against its channel. The
// selected channel is being read, so it keeps a zero unread count and a
// fresh last-read stamp instead. Messages for unknown channels are dropped.
// No dedup by message id: redelivery counts again.
func (s *Store) RecordIncoming(user, channelID string, msg timeline.Message) {
	l := s.List(user)
	idx := l.IndexByID(channelID)
	if idx < 0 {
		s.log.Debug("Dropping message for unknown channel", "identity", user, "channelID", channelID, "messageID", msg.ID)
		return
	}
	if idx == l.Selected {
		l.Channels[idx].LastRead = s.now()
	} else {
		l.Channels[idx].UnreadCount++
	}
	s.changed(user)
}

// Delete removes a channel, releases its subscription, and keeps the
// selection cursor valid: indexes past the removed channel shift left, and
// a deleted selected channel hands the cursor to its nearest neighbor (or
// clears it when the list empties). The neighbor's unread count is not
// touched; this is a cursor fix, not a read.
func (s *Store) Delete(user, channelID string) error {
	l := s.List(user)
	idx := l.IndexByID(channelID)
	if idx < 0 {
		return errors.ChannelNotFound(channelID)
	}

	removed := l.Channels[idx]
	s.unsubscribe(removed.ID, removed.Hashtags)
	l.Channels = append(l.Channels[:idx], l.Channels[idx+1:]...)

	switch {
	case len(l.Channels) == 0:
		l.Selected = NoSelection
	case l.Selected > idx:
		l.Selected--
	case l.Selected == idx:
		if l.Selected >= len(l.Channels) {
			l.Selected = len(l.Channels) - 1
		}
	}

	s.log.Info("Channel deleted", "identity", user, "channelID", channelID, "name", removed.Name)
	s.changed(user)
	return nil
}

// Edit renames and retags a channel. When the normalized hashtag set
// actually changes, the old subscription is released and a new one opened.
func (s *Store) Edit(user, channelID, name string, hashtags []string) error {
	l := s.List(user)
	idx := l.IndexByID(channelID)
	if idx < 0 {
		return errors.ChannelNotFound(channelID)
	}

	updated, err := New(name, hashtags)
	if err != nil {
		return err
	}

	ch := &l.Channels[idx]
	oldKey := timeline.NewFilter(ch.Hashtags).Key()
	newKey := timeline.NewFilter(updated.Hashtags).Key()

	ch.Name = updated.Name
	if oldKey != newKey {
		s.unsubscribe(ch.ID, ch.Hashtags)
		ch.Hashtags = updated.Hashtags
		ch.Subscribed = s.subscribe(ch.ID, ch.Hashtags)
	}

	s.log.Info("Channel edited", "identity", user, "channelID", channelID, "name", ch.Name, "hashtags", ch.Hashtags)
	s.changed(user)
	return nil
}

// MatchChannels returns the ids of the identity's channels whose hashtag set
// overlaps the message's hashtags, in list order.
func (s *Store) MatchChannels(user string, hashtags []string) []string {
	l := s.List(user)
	var out []string
	for _, ch := range l.Channels {
		if ch.Matches(hashtags) {
			out = append(out, ch.ID)
		}
	}
	return out
}

// Snapshot returns a deep copy of every identity's list, safe to hand to a
// persistence goroutine while the UI keeps mutating.
func (s *Store) Snapshot() map[string]*List {
	out := make(map[string]*List, len(s.byUser))
	for user, l := range s.byUser {
		channels := make([]Channel, len(l.Channels))
		copy(channels, l.Channels)
		for i := range channels {
			tags := make([]string, len(channels[i].Hashtags))
			copy(tags, channels[i].Hashtags)
			channels[i].Hashtags = tags
		}
		out[user] = &List{Channels: channels, Selected: l.Selected}
	}
	return out
}

// Restore replaces the identity's list with persisted state and re-opens
// subscriptions for its channels. The list is validated first.
func (s *Store) Restore(user string, l *List) error {
	if err := l.Validate(); err != nil {
		return err
	}
	for i := range l.Channels {
		l.Channels[i].Hashtags = timeline.NormalizeHashtags(l.Channels[i].Hashtags)
		l.Channels[i].Subscribed = s.subscribe(l.Channels[i].ID, l.Channels[i].Hashtags)
	}
	s.byUser[user] = l
	s.log.Info("Channel list restored", "identity", user, "channels", len(l.Channels))
	return nil
}

func (s *Store) subscribe(channelID string, hashtags []string) bool {
	if s.bridge == nil {
		return true
	}
	if err := s.bridge.Subscribe(channelID, hashtags); err != nil {
		s.log.Warn("Subscription failed", "channelID", channelID, "error", err)
		return false
	}
	return true
}

func (s *Store) unsubscribe(channelID string, hashtags []string) {
	if s.bridge == nil {
		return
	}
	if err := s.bridge.Unsubscribe(channelID, hashtags); err != nil {
		s.log.Warn("Unsubscribe failed", "channelID", channelID, "error", err)
	}
}

func (s *Store) changed(user string) {
	if s.persist != nil {
		s.persist(user)
	}
}
