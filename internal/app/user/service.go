package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/auth"
	"backend/internal/providers/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userCacheTTL = 5 * time.Minute

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetSupportAdmin(ctx context.Context) (*User, error)
	ListDirectory(ctx context.Context) ([]*DirectoryEntry, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error)
}

type service struct {
	repo      Repository
	redisP    *redis.RedisProvider
	logger    *zap.SugaredLogger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, redisP *redis.RedisProvider, logger *zap.Logger, jwtSecret string, tokenTTL time.Duration) Service {
	return &service{
		repo:      repo,
		redisP:    redisP,
		logger:    logger.Sugar(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if _, err := s.repo.GetUserByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		UserName:     req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)

	return s.withToken(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.CheckPasswordHash(req.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return s.withToken(user)
}

func (s *service) withToken(user *User) (*AuthResponse, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id: %w", err)
	}

	token, err := auth.MakeToken(userID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *service) GetUserByID(ctx context.Context, id string) (*User, error) {
	cacheKey := fmt.Sprintf("user:id:%s", id)

	cached, err := s.redisP.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var user User
		if json.Unmarshal([]byte(cached), &user) == nil {
			return &user, nil
		}
	}

	user, err := s.repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if data, err := json.Marshal(user); err == nil {
		s.redisP.SetEX(ctx, cacheKey, data, userCacheTTL)
	}

	return user, nil
}

// GetSupportAdmin returns the account that client conversations are held
// with: the oldest ADMIN user.
func (s *service) GetSupportAdmin(ctx context.Context) (*User, error) {
	admin, err := s.repo.GetFirstUserByRole(RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get support admin: %w", err)
	}
	return admin, nil
}

func (s *service) ListDirectory(ctx context.Context) ([]*DirectoryEntry, error) {
	users, err := s.repo.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entries := make([]*DirectoryEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, &DirectoryEntry{
			ID:       u.ID,
			UserName: u.UserName,
			Email:    u.Email,
			Role:     u.Role,
		})
	}
	return entries, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	fields := map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"nic":        req.NIC,
		"birth_date": req.BirthDate,
		"phone":      req.Phone,
		"address":    req.Address,
	}

	if err := s.repo.UpdateProfile(userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.redisP.Del(ctx, fmt.Sprintf("user:id:%s", userID))

	return s.repo.GetUserByID(userID)
}
