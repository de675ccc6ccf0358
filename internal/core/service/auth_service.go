package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
	"github.com/bloglane/blog-api/internal/pkg/validate"
)

const defaultTokenTTL = 1000 * time.Hour

// AuthService implements registration, login and account status changes.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	tokenTTL time.Duration
	events   ports.AccountEventPublisher
	status   *accountStatus
	log      zerolog.Logger
	now      func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithStatusCache makes the service keep the account status cache current.
func WithStatusCache(c ports.StatusCache) AuthOption {
	return func(s *AuthService) { s.status.cache = c }
}

// WithEventPublisher sends every successful account change to p.
func WithEventPublisher(p ports.AccountEventPublisher) AuthOption {
	return func(s *AuthService) { s.events = p }
}

// WithAuthClock overrides the time source.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	tokenTTL time.Duration,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	s := &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		status:   &accountStatus{users: users, log: log},
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an enabled account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in domain.Registration) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return "", err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", err
		}
		return "", fmt.Errorf("register: %w", err)
	}

	token, err := s.issue(created.ID)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.status.remember(ctx, created.ID, false)
	s.publish(created.ID, domain.EventRegistered)
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return token, nil
}

// Login returns a token for valid credentials. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in domain.Credentials) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	s.publish(user.ID, domain.EventLoggedIn)
	return token, nil
}

func (s *AuthService) Disable(ctx context.Context, userID string) error {
	return s.setDisabled(ctx, userID, true)
}

func (s *AuthService) Enable(ctx context.Context, userID string) error {
	return s.setDisabled(ctx, userID, false)
}

func (s *AuthService) setDisabled(ctx context.Context, userID string, disabled bool) error {
	if err := s.users.SetDisabled(ctx, userID, disabled); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("set account status: %w", err)
	}

	s.status.forget(ctx, userID)

	event := domain.EventEnabled
	if disabled {
		event = domain.EventDisabled
	}
	s.publish(userID, event)
	s.log.Info().Str("user_id", userID).Bool("disabled", disabled).Msg("account status changed")
	return nil
}

// CheckIdentity reports whether userID names an existing account.
// An unknown id is (false, nil).
func (s *AuthService) CheckIdentity(ctx context.Context, userID string) (bool, error) {
	if _, err := s.status.disabled(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check identity: %w", err)
	}
	return true, nil
}

func (s *AuthService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(domain.Claims{UserID: userID}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *AuthService) publish(userID string, t domain.AccountEventType) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.AccountEvent{UserID: userID, Type: t, OccurredAt: s.now().UTC()})
}
