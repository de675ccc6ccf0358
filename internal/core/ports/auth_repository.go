package ports

import (
	"context"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// UserRepository is the credential store. It is the single source of truth
// for email uniqueness: Create must return domain.ErrDuplicateEmail when the
// email is already taken, even if a prior lookup missed it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SetDisabled flips the isDisabled flag. Returns domain.ErrUserNotFound
	// when no user has the given id.
	SetDisabled(ctx context.Context, id string, disabled bool) error
}
