package message

import (
	"context"
	"fmt"
	"sync"

	"backend/internal/utils"

	"go.uber.org/zap"
)

// Loader fetches the full ordered message list of one conversation.
type Loader func(ctx context.Context, conversationID string) ([]*Message, error)

// Feed turns the write-side event stream into per-conversation live queries.
// A subscriber receives the current snapshot immediately and the full
// replacement snapshot after every subsequent write to the same conversation.
type Feed struct {
	bus    *utils.EventBus
	load   Loader
	logger *zap.SugaredLogger
}

func NewFeed(bus *utils.EventBus, load Loader, logger *zap.Logger) *Feed {
	return &Feed{
		bus:    bus,
		load:   load,
		logger: logger.Sugar(),
	}
}

// Subscription is a live query handle. Close detaches it; after Close returns,
// the snapshot callback is never invoked again. Close is idempotent.
//
// Deliveries run concurrently but dispatch in trigger order: each reload takes
// a sequence number when it is triggered, and a snapshot is dropped if a
// later-triggered one has already been dispatched. A reload always observes at
// least the write whose event triggered it, so dropping older snapshots never
// loses a message.
type Subscription struct {
	feed           *Feed
	conversationID string
	onSnapshot     func([]*Message)

	mu        sync.Mutex
	closed    bool
	cancel    func()
	seq       uint64
	delivered uint64
}

// Subscribe opens a live query on a conversation. The bus handler is attached
// before the initial load so a write landing during the load is redelivered
// rather than missed. The initial snapshot is dispatched synchronously before
// Subscribe returns; if that load fails, the handler is detached, no
// subscription is established, and the error is returned.
func (f *Feed) Subscribe(conversationID string, onSnapshot func([]*Message)) (*Subscription, error) {
	sub := &Subscription{
		feed:           f,
		conversationID: conversationID,
		onSnapshot:     onSnapshot,
	}

	sub.cancel = f.bus.Subscribe(EventMessageCreated, func(e utils.Event) {
		event, ok := e.Data.(MessageCreatedEvent)
		if !ok || event.ConversationID != conversationID {
			return
		}
		go sub.deliver(sub.nextSeq())
	})

	seq := sub.nextSeq()
	messages, err := f.load(context.Background(), conversationID)
	if err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to establish subscription: %w", err)
	}

	sub.dispatch(seq, messages)

	return sub, nil
}

// deliver reloads the conversation and pushes the result. A failed reload is
// logged and dropped; the subscriber keeps its previous snapshot and will be
// caught up by the next delivery.
func (s *Subscription) deliver(seq uint64) {
	messages, err := s.feed.load(context.Background(), s.conversationID)
	if err != nil {
		s.feed.logger.Warnw("Failed to load conversation snapshot",
			"conversation_id", s.conversationID,
			"error", err,
		)
		return
	}
	s.dispatch(seq, messages)
}

func (s *Subscription) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Subscription) dispatch(seq uint64, messages []*Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq <= s.delivered {
		return
	}
	s.delivered = seq
	s.onSnapshot(messages)
}

func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}
