package ports

import (
	"context"
	"time"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Verify never errors; a
// mismatch or an unreadable hash is simply false.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs and verifies authentication tokens. Verify failures are
// *domain.AuthError values.
type TokenIssuer interface {
	Issue(claims domain.Claims, ttl time.Duration) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// StatusCache remembers whether an account is disabled. Writers to the
// store call Invalidate; only readers of the store call Store.
type StatusCache interface {
	Lookup(ctx context.Context, userID string) (disabled, found bool, err error)
	Store(ctx context.Context, userID string, disabled bool) error
	Invalidate(ctx context.Context, userID string) error
}

// AccountEventPublisher hands audit events off for asynchronous recording.
type AccountEventPublisher interface {
	Enqueue(event domain.AccountEvent)
}

type AuthService interface {
	Register(ctx context.Context, in domain.Registration) (string, error)
	Login(ctx context.Context, in domain.Credentials) (string, error)
	Disable(ctx context.Context, userID string) error
	Enable(ctx context.Context, userID string) error
	CheckIdentity(ctx context.Context, userID string) (bool, error)
}
