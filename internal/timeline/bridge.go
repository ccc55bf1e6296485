package timeline

import (
	"log/slog"

	"github.com/zhubert/hashdeck/internal/logger"
)

// Subscriber is the relay-side collaborator the bridge drives. It is only
// asked to open a subscription the first time a hashtag set is needed and to
// close it when the last channel using that set is gone.
type Subscriber interface {
	Subscribe(Filter) error
	Unsubscribe(Filter) error
}

// Bridge reference-counts relay subscriptions by normalized hashtag set.
// Channels with identical hashtag sets share a single subscription; the set
// identity is the filter key, not the channel. All methods are expected to be
// called from the UI goroutine.
type Bridge struct {
	sub  Subscriber
	refs map[string]map[string]struct{} // filter key -> channel IDs holding it
	keys map[string]Filter              // filter key -> filter
	log  *slog.Logger
}

// NewBridge creates a bridge over the given relay collaborator.
func NewBridge(sub Subscriber) *Bridge {
	return &Bridge{
		sub:  sub,
		refs: make(map[string]map[string]struct{}),
		keys: make(map[string]Filter),
		log:  logger.ComponentLogger("Bridge"),
	}
}

// Subscribe registers channelID against the hashtag set. The collaborator is
// only contacted when the set has no subscription yet; otherwise the existing
// one is reused. Calling Subscribe again for the same channel and set is a
// no-op.
func (b *Bridge) Subscribe(channelID string, hashtags []string) error {
	f := NewFilter(hashtags)
	if f.IsEmpty() {
		return nil
	}
	key := f.Key()

	holders, exists := b.refs[key]
	if exists {
		if _, held := holders[channelID]; held {
			return nil
		}
		holders[channelID] = struct{}{}
		b.log.Debug("Reusing subscription", "filter", key, "channelID", channelID, "refs", len(holders))
		return nil
	}

	if err := b.sub.Subscribe(f); err != nil {
		b.log.Warn("Subscribe failed", "filter", key, "error", err)
		return err
	}
	b.refs[key] = map[string]struct{}{channelID: {}}
	b.keys[key] = f
	b.log.Debug("Opened subscription", "filter", key, "channelID", channelID)
	return nil
}

// Unsubscribe drops channelID's reference to the hashtag set. The
// collaborator is only asked to close the subscription when the last
// referencing channel is gone. Unknown channel/set pairs are a no-op.
func (b *Bridge) Unsubscribe(channelID string, hashtags []string) error {
	f := NewFilter(hashtags)
	key := f.Key()

	holders, exists := b.refs[key]
	if !exists {
		return nil
	}
	if _, held := holders[channelID]; !held {
		return nil
	}
	delete(holders, channelID)
	if len(holders) > 0 {
		b.log.Debug("Released subscription reference", "filter", key, "channelID", channelID, "refs", len(holders))
		return nil
	}

	delete(b.refs, key)
	delete(b.keys, key)
	if err := b.sub.Unsubscribe(f); err != nil {
		b.log.Warn("Unsubscribe failed", "filter", key, "error", err)
		return err
	}
	b.log.Debug("Closed subscription", "filter", key)
	return nil
}

// RefCount returns how many channels currently hold the given hashtag set.
func (b *Bridge) RefCount(hashtags []string) int {
	return len(b.refs[NewFilter(hashtags).Key()])
}

// ActiveFilters returns the filters with at least one referencing channel.
func (b *Bridge) ActiveFilters() []Filter {
	out := make([]Filter, 0, len(b.keys))
	for _, f := range b.keys {
		out = append(out, f)
	}
	return out
}
