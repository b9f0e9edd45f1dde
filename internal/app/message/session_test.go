package message

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	subs    []*Subscription
	failErr error
}

func (f *fakeSource) Subscribe(conversationID string, onSnapshot func([]*Message)) (*Subscription, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	sub := &Subscription{
		conversationID: conversationID,
		onSnapshot:     onSnapshot,
		cancel:         func() {},
	}
	f.subs = append(f.subs, sub)
	return sub, nil
}

func (f *fakeSource) push(sub *Subscription, messages []*Message) {
	sub.dispatch(sub.nextSeq(), messages)
}

type sendCall struct {
	conversationID string
	senderID       string
	body           string
}

type fakeSender struct {
	calls []sendCall
	err   error
}

func (f *fakeSender) send(ctx context.Context, conversationOwnerID, senderID, body string) (*Message, error) {
	f.calls = append(f.calls, sendCall{conversationOwnerID, senderID, body})
	if f.err != nil {
		return nil, f.err
	}
	return &Message{ConversationID: conversationOwnerID, SenderID: senderID, Body: body, CreatedAt: time.Now()}, nil
}

func newTestSession(source Source, sender *fakeSender) *Session {
	return NewSession(source, sender.send, "user-1", nil)
}

func TestSession_ActivateReplacesSubscription(t *testing.T) {
	source := &fakeSource{}
	session := newTestSession(source, &fakeSender{})

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate(conv-a) failed: %v", err)
	}
	if err := session.Activate("conv-b"); err != nil {
		t.Fatalf("Activate(conv-b) failed: %v", err)
	}

	if len(source.subs) != 2 {
		t.Fatalf("expected 2 subscriptions opened, got %d", len(source.subs))
	}
	if !source.subs[0].closed {
		t.Error("first subscription should be closed after re-activation")
	}
	if source.subs[1].closed {
		t.Error("second subscription should still be live")
	}

	// A late callback from the torn-down subscription must not mutate state.
	source.push(source.subs[0], []*Message{{Body: "stale"}})
	if got := session.Messages(); len(got) != 0 {
		t.Errorf("stale snapshot mutated state: %v", got)
	}

	source.push(source.subs[1], []*Message{{Body: "fresh"}})
	got := session.Messages()
	if len(got) != 1 || got[0].Body != "fresh" {
		t.Errorf("expected the fresh snapshot, got %v", got)
	}
}

func TestSession_SnapshotsReplaceNotAccumulate(t *testing.T) {
	source := &fakeSource{}
	session := newTestSession(source, &fakeSender{})

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	sub := source.subs[0]

	source.push(sub, []*Message{{Body: "a"}})
	source.push(sub, []*Message{{Body: "a"}, {Body: "b"}})
	source.push(sub, []*Message{{Body: "b"}})

	got := session.Messages()
	if len(got) != 1 || got[0].Body != "b" {
		t.Errorf("messages should equal the most recent batch, got %v", got)
	}
}

func TestSession_ActivateFailureEntersErrorState(t *testing.T) {
	source := &fakeSource{failErr: errors.New("store unavailable")}
	session := newTestSession(source, &fakeSender{})

	if err := session.Activate("conv-a"); err == nil {
		t.Fatal("expected Activate to surface the subscription error")
	}
	if session.State() != StateError {
		t.Errorf("state = %v, want StateError", session.State())
	}
}

func TestSession_DeactivateIsIdempotent(t *testing.T) {
	source := &fakeSource{}
	session := newTestSession(source, &fakeSender{})

	// Never activated.
	session.Deactivate()
	session.Deactivate()

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	session.Deactivate()
	session.Deactivate()

	if !source.subs[0].closed {
		t.Error("subscription should be closed after Deactivate")
	}
	if session.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", session.State())
	}
}

func TestSession_SubmitSendsTrimmedDraftOnce(t *testing.T) {
	source := &fakeSource{}
	sender := &fakeSender{}
	session := newTestSession(source, sender)

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	session.UpdateDraft("  hello world \n")
	if err := session.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(sender.calls) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(sender.calls))
	}
	call := sender.calls[0]
	if call.body != "hello world" {
		t.Errorf("body = %q, want trimmed draft", call.body)
	}
	if call.conversationID != "conv-a" || call.senderID != "user-1" {
		t.Errorf("unexpected send target: %+v", call)
	}
	if session.Draft() != "" {
		t.Errorf("draft should be cleared on success, got %q", session.Draft())
	}
	if session.Sending() {
		t.Error("sending flag should be cleared after Submit")
	}
}

func TestSession_SubmitBlankDraftIsNoop(t *testing.T) {
	source := &fakeSource{}
	sender := &fakeSender{}
	session := newTestSession(source, sender)

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	for _, draft := range []string{"", "   ", "\t\n"} {
		session.UpdateDraft(draft)
		if err := session.Submit(context.Background()); err != nil {
			t.Fatalf("Submit(%q) failed: %v", draft, err)
		}
	}

	if len(sender.calls) != 0 {
		t.Errorf("blank drafts must never reach the store, got %d sends", len(sender.calls))
	}
}

func TestSession_SubmitFailureKeepsDraft(t *testing.T) {
	source := &fakeSource{}
	sender := &fakeSender{err: errors.New("write rejected")}
	session := newTestSession(source, sender)

	if err := session.Activate("conv-a"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	session.UpdateDraft("please retry me")
	if err := session.Submit(context.Background()); err == nil {
		t.Fatal("expected Submit to surface the send error")
	}

	if session.Draft() != "please retry me" {
		t.Errorf("draft should be preserved after a failed send, got %q", session.Draft())
	}
	if session.Sending() {
		t.Error("sending flag must be cleared even on failure")
	}
}
