package message

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"backend/internal/utils"

	"go.uber.org/zap"
)

type fakeStore struct {
	mu            sync.Mutex
	conversations map[string][]*Message
	failLoad      bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{conversations: make(map[string][]*Message)}
}

func (f *fakeStore) load(ctx context.Context, conversationID string) ([]*Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errors.New("store unavailable")
	}
	return f.conversations[conversationID], nil
}

func (f *fakeStore) append(conversationID string, msg *Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations[conversationID] = append(f.conversations[conversationID], msg)
}

func collectSnapshots() (func([]*Message), chan []*Message) {
	ch := make(chan []*Message, 16)
	return func(messages []*Message) { ch <- messages }, ch
}

func awaitSnapshot(t *testing.T, ch chan []*Message) []*Message {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestFeed_InitialSnapshotDeliveredOnSubscribe(t *testing.T) {
	store := newFakeStore()
	store.append("conv-a", &Message{Body: "hello"})

	bus := utils.NewEventBus()
	feed := NewFeed(bus, store.load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()
	sub, err := feed.Subscribe("conv-a", onSnapshot)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	snap := awaitSnapshot(t, snapshots)
	if len(snap) != 1 || snap[0].Body != "hello" {
		t.Errorf("initial snapshot = %v, want the existing conversation", snap)
	}
}

func TestFeed_SubscribeFailsWhenLoadFails(t *testing.T) {
	store := newFakeStore()
	store.failLoad = true

	bus := utils.NewEventBus()
	feed := NewFeed(bus, store.load, zap.NewNop())

	onSnapshot, _ := collectSnapshots()
	if _, err := feed.Subscribe("conv-a", onSnapshot); err == nil {
		t.Fatal("expected Subscribe to fail when the initial load fails")
	}
}

func TestFeed_DeliversReplacementSnapshotOnWrite(t *testing.T) {
	store := newFakeStore()
	bus := utils.NewEventBus()
	feed := NewFeed(bus, store.load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()
	sub, err := feed.Subscribe("conv-a", onSnapshot)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	awaitSnapshot(t, snapshots) // initial, empty

	msg := &Message{ConversationID: "conv-a", SenderID: "u1", ReceiverID: "u2", Body: "hello"}
	store.append("conv-a", msg)
	bus.Publish(EventMessageCreated, MessageCreatedEvent{ConversationID: "conv-a", Message: msg})

	snap := awaitSnapshot(t, snapshots)
	if len(snap) != 1 || snap[0].Body != "hello" {
		t.Errorf("snapshot after write = %v, want the full updated list", snap)
	}
}

func TestFeed_IgnoresOtherConversations(t *testing.T) {
	store := newFakeStore()
	bus := utils.NewEventBus()
	feed := NewFeed(bus, store.load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()
	sub, err := feed.Subscribe("conv-a", onSnapshot)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	awaitSnapshot(t, snapshots) // initial

	bus.Publish(EventMessageCreated, MessageCreatedEvent{ConversationID: "conv-b", Message: &Message{Body: "x"}})

	select {
	case snap := <-snapshots:
		t.Errorf("received snapshot for an unrelated conversation: %v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

// A reload triggered by an older write must not overwrite the snapshot of a
// later write, even when its load finishes last.
func TestFeed_SlowReloadCannotClobberNewerSnapshot(t *testing.T) {
	store := newFakeStore()
	bus := utils.NewEventBus()

	var calls int32
	reloadStarted := make(chan struct{})
	release := make(chan struct{})

	// The second load (the reload for the first write) captures its result,
	// then parks until released, returning a stale snapshot.
	load := func(ctx context.Context, conversationID string) ([]*Message, error) {
		snap, err := store.load(ctx, conversationID)
		if atomic.AddInt32(&calls, 1) == 2 {
			close(reloadStarted)
			<-release
		}
		return snap, err
	}

	feed := NewFeed(bus, load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()
	sub, err := feed.Subscribe("conv-a", onSnapshot)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	awaitSnapshot(t, snapshots) // initial, empty

	store.append("conv-a", &Message{ConversationID: "conv-a", Body: "a"})
	bus.Publish(EventMessageCreated, MessageCreatedEvent{ConversationID: "conv-a", Message: &Message{Body: "a"}})

	select {
	case <-reloadStarted:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the first reload to start")
	}

	store.append("conv-a", &Message{ConversationID: "conv-a", Body: "b"})
	bus.Publish(EventMessageCreated, MessageCreatedEvent{ConversationID: "conv-a", Message: &Message{Body: "b"}})

	snap := awaitSnapshot(t, snapshots)
	if len(snap) != 2 {
		t.Fatalf("expected both writes in the snapshot, got %d messages", len(snap))
	}

	// Let the stale one-message reload finish; it must be dropped.
	close(release)

	select {
	case snap := <-snapshots:
		t.Errorf("stale reload overwrote the newer snapshot: got %d messages", len(snap))
	case <-time.After(100 * time.Millisecond):
	}
}

// A write that lands while the initial load is still running must still reach
// the subscriber.
func TestFeed_WriteDuringInitialLoadIsNotLost(t *testing.T) {
	store := newFakeStore()
	bus := utils.NewEventBus()

	var calls int32
	initialStarted := make(chan struct{})
	release := make(chan struct{})

	load := func(ctx context.Context, conversationID string) ([]*Message, error) {
		snap, err := store.load(ctx, conversationID)
		if atomic.AddInt32(&calls, 1) == 1 {
			close(initialStarted)
			<-release
		}
		return snap, err
	}

	feed := NewFeed(bus, load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()

	type result struct {
		sub *Subscription
		err error
	}
	done := make(chan result, 1)
	go func() {
		sub, err := feed.Subscribe("conv-a", onSnapshot)
		done <- result{sub, err}
	}()

	select {
	case <-initialStarted:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the initial load to start")
	}

	store.append("conv-a", &Message{ConversationID: "conv-a", Body: "hello"})
	bus.Publish(EventMessageCreated, MessageCreatedEvent{ConversationID: "conv-a", Message: &Message{Body: "hello"}})

	snap := awaitSnapshot(t, snapshots)
	if len(snap) != 1 || snap[0].Body != "hello" {
		t.Fatalf("write during the initial load was lost: %v", snap)
	}

	close(release)

	res := <-done
	if res.err != nil {
		t.Fatalf("Subscribe failed: %v", res.err)
	}
	defer res.sub.Close()

	// The stale empty initial snapshot must not be dispatched after the
	// newer one.
	select {
	case snap := <-snapshots:
		t.Errorf("stale initial snapshot dispatched late: %v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	store := newFakeStore()
	bus := utils.NewEventBus()
	feed := NewFeed(bus, store.load, zap.NewNop())

	onSnapshot, snapshots := collectSnapshots()
	sub, err := feed.Subscribe("conv-a", onSnapshot)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	awaitSnapshot(t, snapshots) // initial

	sub.Close()
	sub.Close() // idempotent

	// A delivery racing with Close must be dropped by the closed guard.
	sub.deliver(sub.nextSeq())

	select {
	case snap := <-snapshots:
		t.Errorf("received snapshot after Close: %v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}
