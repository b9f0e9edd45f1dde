package message

import (
	"context"
	"strings"
	"sync"
)

// SessionState is the lifecycle of a conversation session's subscription.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLive
	StateError
)

// Source opens live snapshot subscriptions. *Feed satisfies it; tests
// substitute a fake.
type Source interface {
	Subscribe(conversationID string, onSnapshot func([]*Message)) (*Subscription, error)
}

// SendFunc submits one message into a conversation on behalf of a sender.
type SendFunc func(ctx context.Context, conversationOwnerID, senderID, body string) (*Message, error)

// Session owns the state of exactly one active conversation for one
// subscriber: the current snapshot, the composition draft, and the in-flight
// send guard. Snapshots replace the message list wholesale; nothing is merged.
type Session struct {
	source Source
	send   SendFunc
	userID string

	mu             sync.Mutex
	conversationID string
	generation     uint64
	sub            *Subscription
	state          SessionState
	messages       []*Message
	draft          string
	sending        bool
	onSnapshot     func([]*Message)
}

// NewSession creates a session for one authenticated user. onSnapshot is
// invoked with the replacement message list after every accepted delivery;
// it may be nil.
func NewSession(source Source, send SendFunc, userID string, onSnapshot func([]*Message)) *Session {
	return &Session{
		source:     source,
		send:       send,
		userID:     userID,
		onSnapshot: onSnapshot,
	}
}

// Activate tears down any previous subscription, clears the message list, and
// opens a live subscription on the given conversation. A callback belonging
// to an earlier activation can never mutate state once Activate is called.
func (s *Session) Activate(conversationOwnerID string) error {
	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.generation++
	gen := s.generation
	s.conversationID = conversationOwnerID
	s.messages = nil
	s.state = StateIdle
	s.mu.Unlock()

	sub, err := s.source.Subscribe(conversationOwnerID, func(messages []*Message) {
		s.applySnapshot(gen, messages)
	})
	if err != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.state = StateError
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.generation != gen {
		// A newer Activate or Deactivate won the race.
		s.mu.Unlock()
		sub.Close()
		return nil
	}
	s.sub = sub
	s.state = StateLive
	s.mu.Unlock()
	return nil
}

// Deactivate releases the subscription. Safe to call repeatedly or when
// nothing is active.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.generation++
	s.conversationID = ""
	s.messages = nil
	s.state = StateIdle
}

func (s *Session) applySnapshot(gen uint64, messages []*Message) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.messages = messages
	s.state = StateLive
	callback := s.onSnapshot
	s.mu.Unlock()

	if callback != nil {
		callback(messages)
	}
}

func (s *Session) UpdateDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Submit sends the current draft. Blank drafts and overlapping submissions
// are silent no-ops. The draft is cleared only on success so a failed send
// can be retried; the sending flag is always cleared.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.sending || s.conversationID == "" {
		s.mu.Unlock()
		return nil
	}
	body := strings.TrimSpace(s.draft)
	if body == "" {
		s.mu.Unlock()
		return nil
	}
	s.sending = true
	conversationID := s.conversationID
	s.mu.Unlock()

	_, err := s.send(ctx, conversationID, s.userID, body)

	s.mu.Lock()
	s.sending = false
	if err == nil {
		s.draft = ""
	}
	s.mu.Unlock()

	return err
}

func (s *Session) Messages() []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}
