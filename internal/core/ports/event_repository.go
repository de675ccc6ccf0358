package ports

import (
	"context"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// AccountEventRepository persists the account audit trail.
type AccountEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AccountEvent) error
}
