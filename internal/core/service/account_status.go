package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/ports"
)

// accountStatus answers "is this account disabled" through the status cache,
// falling back to the credential store. Cache failures are logged and skipped.
type accountStatus struct {
	users ports.UserRepository
	cache ports.StatusCache
	log   zerolog.Logger
}

// disabled returns domain.ErrUserNotFound when the id is unknown.
func (a *accountStatus) disabled(ctx context.Context, userID string) (bool, error) {
	if a.cache != nil {
		isDisabled, found, err := a.cache.Lookup(ctx, userID)
		if err != nil {
			a.log.Warn().Err(err).Str("user_id", userID).Msg("status cache lookup failed, using store")
		} else if found {
			return isDisabled, nil
		}
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	a.remember(ctx, userID, user.IsDisabled)
	return user.IsDisabled, nil
}

func (a *accountStatus) remember(ctx context.Context, userID string, disabled bool) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Store(ctx, userID, disabled); err != nil {
		a.log.Warn().Err(err).Str("user_id", userID).Msg("status cache store failed")
	}
}

// forget drops the cached flag after a status write so the next read goes to
// the store.
func (a *accountStatus) forget(ctx context.Context, userID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Invalidate(ctx, userID); err != nil {
		a.log.Warn().Err(err).Str("user_id", userID).Msg("status cache invalidate failed")
	}
}
