package ports

import (
	"context"

	"github.com/bloglane/blog-api/internal/core/domain"
)

// ListPostsInput carries the parameters for the list endpoint.
type ListPostsInput struct {
	AuthorID string
	Page     int
	Limit    int
}

// ListPostsResult is returned by ListPosts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines use-case operations for blog posts.
type PostService interface {
	CreatePost(ctx context.Context, authorID string, draft domain.PostDraft) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, in ListPostsInput) (*ListPostsResult, error)
	UpdatePost(ctx context.Context, userID, id string, draft domain.PostDraft) (*domain.Post, error)
	DeletePost(ctx context.Context, userID, id string) error
	LikePost(ctx context.Context, userID, id string) ([]domain.Like, error)
	UnlikePost(ctx context.Context, userID, id string) ([]domain.Like, error)
}
