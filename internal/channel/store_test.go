package channel

import (
	"testing"
	"time"

	"github.com/zhubert/hashdeck/internal/errors"
	"github.com/zhubert/hashdeck/internal/timeline"
)

// recordingSubscriber counts collaborator calls for bridge-backed stores.
type recordingSubscriber struct {
	subscribes   []string
	unsubscribes []string
}

func (r *recordingSubscriber) Subscribe(f timeline.Filter) error {
	r.subscribes = append(r.subscribes, f.Key())
	return nil
}

func (r *recordingSubscriber) Unsubscribe(f timeline.Filter) error {
	r.unsubscribes = append(r.unsubscribes, f.Key())
	return nil
}

func newTestStore() (*Store, *recordingSubscriber) {
	sub := &recordingSubscriber{}
	s := NewStore(timeline.NewBridge(sub))
	return s, sub
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

const alice = "npub-alice"

func TestStore_Create(t *testing.T) {
	s, sub := newTestStore()

	ch, err := s.Create(alice, "Food", []string{"#Food", "cooking"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ch.Name != "Food" {
		t.Errorf("Name = %q, want Food", ch.Name)
	}
	if !ch.Subscribed {
		t.Error("new channel should be subscribed")
	}
	if len(sub.subscribes) != 1 {
		t.Errorf("collaborator Subscribe called %d times, want 1", len(sub.subscribes))
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	s, _ := newTestStore()

	if _, err := s.Create(alice, "  ", []string{"x"}); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("empty name: expected KindInvalid, got %v", err)
	}
	if _, err := s.Create(alice, "X", nil); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("no hashtags: expected KindInvalid, got %v", err)
	}
	if len(s.List(alice).Channels) != 0 {
		t.Error("failed creates must not append channels")
	}
}

func TestStore_Create_AutoSelectsOnlyWhenListWasEmpty(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "First", []string{"one"})
	if got := s.List(alice).Selected; got != 0 {
		t.Errorf("first channel should be auto-selected, Selected = %d", got)
	}

	s.Select(alice, 0)
	s.Create(alice, "Second", []string{"two"})
	if got := s.List(alice).Selected; got != 0 {
		t.Errorf("creating into a non-empty list must not move the selection, Selected = %d", got)
	}
}

func TestStore_ListsArePerIdentityAndNeverMerged(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "Food", []string{"food"})
	s.Create("npub-bob", "Art", []string{"art"})

	if n := len(s.List(alice).Channels); n != 1 {
		t.Errorf("alice has %d channels, want 1", n)
	}
	if n := len(s.List("npub-bob").Channels); n != 1 {
		t.Errorf("bob has %d channels, want 1", n)
	}
}

func TestStore_Select(t *testing.T) {
	s, _ := newTestStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(fixedClock(now))

	s.Create(alice, "A", []string{"a"})
	s.Create(alice, "B", []string{"b"})
	l := s.List(alice)
	l.Channels[1].UnreadCount = 7

	if err := s.Select(alice, 1); err != nil {
		t.Fatalf("Select: %v", err)
	}

	if l.Selected != 1 {
		t.Errorf("Selected = %d, want 1", l.Selected)
	}
	if l.Channels[1].UnreadCount != 0 {
		t.Errorf("selected channel unread = %d, want 0", l.Channels[1].UnreadCount)
	}
	if !l.Channels[1].LastRead.Equal(now) {
		t.Errorf("LastRead = %v, want %v", l.Channels[1].LastRead, now)
	}
}

func TestStore_Select_LeavesOtherChannelsUntouched(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "A", []string{"a"})
	s.Create(alice, "B", []string{"b"})
	l := s.List(alice)
	l.Channels[0].UnreadCount = 3

	s.Select(alice, 1)

	if l.Channels[0].UnreadCount != 3 {
		t.Errorf("unselected channel unread = %d, want 3", l.Channels[0].UnreadCount)
	}
}

func TestStore_Select_OutOfRange(t *testing.T) {
	s, _ := newTestStore()
	s.Create(alice, "A", []string{"a"})

	if err := s.Select(alice, 5); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
	if err := s.Select(alice, -1); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound for negative index, got %v", err)
	}
}

func TestStore_RecordIncoming(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "A", []string{"a"})
	s.Create(alice, "B", []string{"b"})
	l := s.List(alice)
	s.Select(alice, 0)

	msg := timeline.Message{ID: "m1", Author: "bob", CreatedAt: time.Now()}
	s.RecordIncoming(alice, l.Channels[1].ID, msg)
	s.RecordIncoming(alice, l.Channels[1].ID, msg) // no dedup by id

	if got := l.Channels[1].UnreadCount; got != 2 {
		t.Errorf("unread = %d, want 2 (redelivery counts again)", got)
	}
}

func TestStore_RecordIncoming_SelectedChannelStaysRead(t *testing.T) {
	s, _ := newTestStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(fixedClock(now))

	s.Create(alice, "A", []string{"a"})
	l := s.List(alice)
	s.Select(alice, 0)

	later := now.Add(time.Minute)
	s.SetClock(fixedClock(later))
	s.RecordIncoming(alice, l.Channels[0].ID, timeline.Message{ID: "m1"})

	if got := l.Channels[0].UnreadCount; got != 0 {
		t.Errorf("selected channel unread = %d, want 0", got)
	}
	if !l.Channels[0].LastRead.Equal(later) {
		t.Errorf("selected channel LastRead = %v, want refreshed to %v", l.Channels[0].LastRead, later)
	}
}

func TestStore_RecordIncoming_UnknownChannelDropped(t *testing.T) {
	s, _ := newTestStore()
	s.Create(alice, "A", []string{"a"})

	// Should not panic or mutate anything
	s.RecordIncoming(alice, "no-such-id", timeline.Message{ID: "m1"})

	if got := s.List(alice).Channels[0].UnreadCount; got != 0 {
		t.Errorf("unread = %d, want 0", got)
	}
}

func TestStore_Delete_ShiftsSelectionLeft(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "A", []string{"a"})
	s.Create(alice, "B", []string{"b"})
	s.Create(alice, "C", []string{"c"})
	l := s.List(alice)
	s.Select(alice, 2)

	if err := s.Delete(alice, l.Channels[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if l.Selected != 1 {
		t.Errorf("Selected = %d, want 1 (shifted left)", l.Selected)
	}
	if ch, _ := l.SelectedChannel(); ch.Name != "C" {
		t.Errorf("selection should still point at C, got %s", ch.Name)
	}
}

func TestStore_Delete_SelectedChannelHandsCursorToNeighbor(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "A", []string{"a"})
	s.Create(alice, "B", []string{"b"})
	l := s.List(alice)
	s.Select(alice, 1)
	l.Channels[0].UnreadCount = 4

	s.Delete(alice, l.Channels[1].ID)

	if l.Selected != 0 {
		t.Errorf("Selected = %d, want 0 (clamped)", l.Selected)
	}
	// Cursor fix, not a read: the neighbor keeps its unread count
	if l.Channels[0].UnreadCount != 4 {
		t.Errorf("neighbor unread = %d, want 4", l.Channels[0].UnreadCount)
	}
}

func TestStore_Delete_LastChannelClearsSelection(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "Only", []string{"x"})
	l := s.List(alice)

	s.Delete(alice, l.Channels[0].ID)

	if len(l.Channels) != 0 {
		t.Fatalf("list should be empty, has %d", len(l.Channels))
	}
	if l.Selected != NoSelection {
		t.Errorf("Selected = %d, want NoSelection", l.Selected)
	}
}

func TestStore_Delete_Unsubscribes(t *testing.T) {
	s, sub := newTestStore()

	s.Create(alice, "A", []string{"a"})
	l := s.List(alice)
	s.Delete(alice, l.Channels[0].ID)

	if len(sub.unsubscribes) != 1 {
		t.Errorf("collaborator Unsubscribe called %d times, want 1", len(sub.unsubscribes))
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	s, _ := newTestStore()

	if err := s.Delete(alice, "missing"); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestStore_Edit_ResubscribesOnHashtagChange(t *testing.T) {
	s, sub := newTestStore()

	s.Create(alice, "Food", []string{"food"})
	l := s.List(alice)
	id := l.Channels[0].ID

	if err := s.Edit(alice, id, "Food & Drink", []string{"food", "drink"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if l.Channels[0].Name != "Food & Drink" {
		t.Errorf("Name = %q, want renamed", l.Channels[0].Name)
	}
	if len(sub.unsubscribes) != 1 || len(sub.subscribes) != 2 {
		t.Errorf("resubscribe expected: %d unsubscribes, %d subscribes", len(sub.unsubscribes), len(sub.subscribes))
	}
}

func TestStore_Edit_RenameOnlyKeepsSubscription(t *testing.T) {
	s, sub := newTestStore()

	s.Create(alice, "Food", []string{"food"})
	id := s.List(alice).Channels[0].ID

	if err := s.Edit(alice, id, "Eats", []string{"#FOOD"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if len(sub.unsubscribes) != 0 {
		t.Error("equivalent hashtag set must not resubscribe")
	}
}

func TestStore_Edit_Invalid(t *testing.T) {
	s, _ := newTestStore()
	s.Create(alice, "Food", []string{"food"})
	id := s.List(alice).Channels[0].ID

	if err := s.Edit(alice, id, "", []string{"food"}); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", err)
	}
	if s.List(alice).Channels[0].Name != "Food" {
		t.Error("failed edit must not change the channel")
	}
}

func TestStore_MatchChannels(t *testing.T) {
	s, _ := newTestStore()

	s.Create(alice, "Food", []string{"food"})
	s.Create(alice, "Travel", []string{"travel", "food"})
	s.Create(alice, "Art", []string{"art"})
	l := s.List(alice)

	got := s.MatchChannels(alice, []string{"#Food"})
	if len(got) != 2 || got[0] != l.Channels[0].ID || got[1] != l.Channels[1].ID {
		t.Errorf("MatchChannels = %v, want the two food channels in order", got)
	}
}

func TestStore_EnsureDefault(t *testing.T) {
	s, _ := newTestStore()

	s.EnsureDefault(alice)
	l := s.List(alice)

	if len(l.Channels) != 1 || l.Channels[0].Name != DefaultChannelName {
		t.Fatalf("expected the seeded %s channel, got %+v", DefaultChannelName, l.Channels)
	}
	if !l.Channels[0].HasHashtag(DefaultChannelTag) {
		t.Errorf("default channel should track #%s", DefaultChannelTag)
	}
	if l.Selected != 0 {
		t.Errorf("default channel should be selected, Selected = %d", l.Selected)
	}

	// Second call leaves the list alone
	s.EnsureDefault(alice)
	if len(l.Channels) != 1 {
		t.Errorf("EnsureDefault must not reseed, have %d channels", len(l.Channels))
	}
}

func TestStore_PersistHookFiresOnMutation(t *testing.T) {
	s, _ := newTestStore()
	var fired []string
	s.SetPersistHook(func(identity string) { fired = append(fired, identity) })

	s.Create(alice, "A", []string{"a"})
	s.Select(alice, 0)
	s.RecordIncoming(alice, s.List(alice).Channels[0].ID, timeline.Message{ID: "m"})
	s.Delete(alice, s.List(alice).Channels[0].ID)

	if len(fired) != 4 {
		t.Errorf("persist hook fired %d times, want 4", len(fired))
	}
	for _, id := range fired {
		if id != alice {
			t.Errorf("hook fired for %q, want %q", id, alice)
		}
	}
}

func TestStore_Restore(t *testing.T) {
	s, sub := newTestStore()

	list := &List{
		Channels: []Channel{
			{ID: "c1", Name: "Food", Hashtags: []string{"food"}, UnreadCount: 2},
			{ID: "c2", Name: "Art", Hashtags: []string{"art"}},
		},
		Selected: 1,
	}
	if err := s.Restore(alice, list); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if len(sub.subscribes) != 2 {
		t.Errorf("restore should resubscribe each channel, got %d", len(sub.subscribes))
	}
	if got := s.List(alice).Channels[0].UnreadCount; got != 2 {
		t.Errorf("unread should survive restore, got %d", got)
	}
}

func TestStore_Restore_RejectsInvalidList(t *testing.T) {
	s, _ := newTestStore()

	bad := &List{
		Channels: []Channel{
			{ID: "dup", Name: "A", Hashtags: []string{"a"}},
			{ID: "dup", Name: "B", Hashtags: []string{"b"}},
		},
		Selected: NoSelection,
	}
	if err := s.Restore(alice, bad); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", err)
	}
}
