package message

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"backend/internal/app/user"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type fakeMessageRepo struct {
	messages  []*Message
	nextID    uint64
	createErr error
}

func (f *fakeMessageRepo) CreateMessage(conversationID, senderID, receiverID, body string) (*Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	msg := &Message{
		ID:             f.nextID,
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeMessageRepo) GetMessagesByConversationID(conversationID string) ([]*Message, error) {
	var out []*Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUserDirectory struct {
	users map[string]*user.User
	admin *user.User
}

func (f *fakeUserDirectory) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserDirectory) GetSupportAdmin(ctx context.Context) (*user.User, error) {
	if f.admin == nil {
		return nil, user.ErrUserNotFound
	}
	return f.admin, nil
}

func (f *fakeUserDirectory) Signup(ctx context.Context, req user.SignupRequest) (*user.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserDirectory) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserDirectory) ListDirectory(ctx context.Context) ([]*user.DirectoryEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserDirectory) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (*user.User, error) {
	return nil, errors.New("not implemented")
}

// testRedisProvider points at a closed port. Cache reads miss and cache
// writes fail silently, which is exactly the degraded mode the service
// must tolerate.
func testRedisProvider() *redis.RedisProvider {
	return redis.NewRedisProvider("redis://127.0.0.1:1/0", zap.NewNop(), time.Minute)
}

func newTestService(repo *fakeMessageRepo, users *fakeUserDirectory, bus *utils.EventBus) Service {
	return NewService(repo, users, testRedisProvider(), bus, zap.NewNop())
}

func directoryWith(owner, admin *user.User) *fakeUserDirectory {
	users := map[string]*user.User{owner.ID: owner}
	if admin != nil {
		users[admin.ID] = admin
	}
	return &fakeUserDirectory{users: users, admin: admin}
}

func TestService_SendTrimsBodyAndRoutesToSupportAdmin(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, directoryWith(owner, admin), utils.NewEventBus())

	msg, err := svc.Send(context.Background(), "client-1", "client-1", "  hello \n")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if msg.Body != "hello" {
		t.Errorf("body = %q, want trimmed", msg.Body)
	}
	if msg.ReceiverID != "admin-1" {
		t.Errorf("receiver = %q, want the support admin", msg.ReceiverID)
	}
	if msg.ConversationID != "client-1" {
		t.Errorf("conversation = %q, want the owner's id", msg.ConversationID)
	}
	if len(repo.messages) != 1 {
		t.Errorf("expected exactly one write, got %d", len(repo.messages))
	}
}

func TestService_SendFromAdminRoutesToOwner(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, directoryWith(owner, admin), utils.NewEventBus())

	msg, err := svc.Send(context.Background(), "client-1", "admin-1", "how can I help?")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if msg.SenderID != "admin-1" || msg.ReceiverID != "client-1" {
		t.Errorf("admin reply should target the owner, got sender=%q receiver=%q", msg.SenderID, msg.ReceiverID)
	}
	if msg.ConversationID != "client-1" {
		t.Errorf("admin reply must stay in the owner's conversation, got %q", msg.ConversationID)
	}
}

func TestService_SendValidation(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty", "", ErrEmptyMessage},
		{"whitespace only", " \t\n ", ErrEmptyMessage},
		{"too long", strings.Repeat("x", maxBodyLength+1), ErrBodyTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeMessageRepo{}
			svc := newTestService(repo, directoryWith(owner, admin), utils.NewEventBus())

			_, err := svc.Send(context.Background(), "client-1", "client-1", tc.body)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Send(%q) error = %v, want %v", tc.name, err, tc.wantErr)
			}
			if len(repo.messages) != 0 {
				t.Errorf("rejected message must not be written, got %d writes", len(repo.messages))
			}
		})
	}
}

func TestService_SendRejectsUnknownConversation(t *testing.T) {
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeUserDirectory{users: map[string]*user.User{admin.ID: admin}, admin: admin}, utils.NewEventBus())

	if _, err := svc.Send(context.Background(), "ghost", "admin-1", "hi"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("error = %v, want ErrConversationNotFound", err)
	}

	// Admins have no conversation of their own.
	if _, err := svc.Send(context.Background(), "admin-1", "admin-1", "hi"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("error = %v, want ErrConversationNotFound for an admin-owned id", err)
	}
}

func TestService_SendRejectsNonParticipant(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	intruder := &user.User{ID: "client-2", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	dir := directoryWith(owner, admin)
	dir.users[intruder.ID] = intruder

	repo := &fakeMessageRepo{}
	svc := newTestService(repo, dir, utils.NewEventBus())

	if _, err := svc.Send(context.Background(), "client-1", "client-2", "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
	if len(repo.messages) != 0 {
		t.Error("non-participant write must not reach the store")
	}
}

func TestService_SendPublishesEvent(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &fakeMessageRepo{}
	bus := utils.NewEventBus()
	svc := newTestService(repo, directoryWith(owner, admin), bus)

	var events []MessageCreatedEvent
	unsubscribe := bus.Subscribe(EventMessageCreated, func(e utils.Event) {
		if ev, ok := e.Data.(MessageCreatedEvent); ok {
			events = append(events, ev)
		}
	})
	defer unsubscribe()

	if _, err := svc.Send(context.Background(), "client-1", "client-1", "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].ConversationID != "client-1" || events[0].Message.Body != "hello" {
		t.Errorf("unexpected event payload: %+v", events[0])
	}
}

func TestService_ListConversationSurvivesCacheOutage(t *testing.T) {
	owner := &user.User{ID: "client-1", Role: user.RoleClient}
	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, directoryWith(owner, admin), utils.NewEventBus())

	if _, err := svc.Send(context.Background(), "client-1", "client-1", "first"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := svc.Send(context.Background(), "client-1", "admin-1", "second"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	messages, err := svc.ListConversation(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("ListConversation failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Body != "first" || messages[1].Body != "second" {
		t.Errorf("messages out of order: %q, %q", messages[0].Body, messages[1].Body)
	}
}
