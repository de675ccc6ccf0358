package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

type auditService struct {
	repo ports.AccountEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that writes to repo.
func NewAuditService(repo ports.AccountEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single account event.
func (s *auditService) Record(ctx context.Context, event domain.AccountEvent) error {
	if event.UserID == "" || event.Type == "" {
		return fmt.Errorf("record account event: incomplete event %+v", event)
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record account event: %w", err)
	}

	s.log.Debug().
		Str("user_id", event.UserID).
		Str("type", string(event.Type)).
		Msg("account event recorded")
	return nil
}
