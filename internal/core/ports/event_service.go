package ports

import (
	"context"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// AuditService records account lifecycle events.
type AuditService interface {
	Record(ctx context.Context, event domain.AccountEvent) error
}
