package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

type SessionEventType string

const (
	SessionLogin  SessionEventType = "login"
	SessionLogout SessionEventType = "logout"
)

// SessionEvent is delivered to subscribers whenever a session starts or ends.
type SessionEvent struct {
	Type   SessionEventType
	UserID uuid.UUID
	At     time.Time
}

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*entity.Session, *entity.User, error)
	Subscribe(fn func(SessionEvent)) (unsubscribe func())
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type authService struct {
	repo   *repository.Repository // users and sessions
	config *utils.Config
	log    *zap.Logger

	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(SessionEvent)
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:        repo,
		config:      config,
		log:         log.With(zap.String("service", "auth")),
		subscribers: map[int]func(SessionEvent){},
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDisabled
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	s.notify(SessionEvent{Type: SessionLogin, UserID: user.ID, At: session.CreatedAt})

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return ErrInvalidSession
	}

	// 2. Resolve the owner before revoking so subscribers know who left
	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID.String())
	if err != nil {
		s.log.Error("Failed to find session", zap.Error(err))
		return fmt.Errorf("failed to logout: %w", err)
	}
	if session == nil {
		return ErrInvalidSession
	}

	// 3. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrInvalidSession
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", session.UserID.String()))
	s.notify(SessionEvent{Type: SessionLogout, UserID: session.UserID, At: time.Now()})
	return nil
}

// CurrentSession resolves a bearer token to its live session and user.
func (s *authService) CurrentSession(ctx context.Context, token string) (*entity.Session, *entity.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil, ErrInvalidSession
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrInvalidSession
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, nil, ErrInvalidSession
	}

	return session, user, nil
}

// Subscribe registers fn for session changes. The returned func removes it
// and is safe to call more than once.
func (s *authService) Subscribe(fn func(SessionEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// EnsureAdmin creates the administrator account when it does not exist yet.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			return fmt.Errorf("admin email %s belongs to a non-admin account", email)
		}
		return nil
	}
	if len(password) < 6 {
		return errors.New("admin password must be at least 6 characters")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.log.Info("Admin account created", zap.String("email", email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	hours := s.config.Session.ExpiryHours
	if hours <= 0 {
		hours = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) notify(ev SessionEvent) {
	s.mu.RLock()
	fns := make([]func(SessionEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
