package ports

import (
	"context"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// ListPostsFilter carries the query parameters for listing posts.
// The store applies IncludeDeleted literally; hiding soft-deleted posts is
// the caller's job.
type ListPostsFilter struct {
	AuthorID       string // empty = all authors
	IncludeDeleted bool
	Page           int // 1-based
	Limit          int
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns a page of posts, newest first, and the total match count.
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	UpdateContent(ctx context.Context, id, header, body string) (*domain.Post, error)
	SoftDelete(ctx context.Context, id string) error
	AddLike(ctx context.Context, id, userID string) ([]domain.Like, error)
	RemoveLike(ctx context.Context, id, userID string) ([]domain.Like, error)
}
