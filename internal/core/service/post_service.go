package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
	"github.com/bloglane/blog-api/internal/pkg/validate"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	status *accountStatus
	log    zerolog.Logger
	now    func() time.Time
}

// NewPostService wires the post use cases. cache may be nil.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache ports.StatusCache, log zerolog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		status: &accountStatus{users: users, cache: cache, log: log},
		log:    log,
		now:    time.Now,
	}
}

// CreatePost publishes a post for an enabled author, snapshotting the
// author's name at write time.
func (s *PostService) CreatePost(ctx context.Context, authorID string, draft domain.PostDraft) (*domain.Post, error) {
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, wrapNotFound("create post", err, domain.ErrUserNotFound)
	}
	if author.IsDisabled {
		return nil, domain.ErrAccountDisabled
	}

	now := s.now().UTC()
	created, err := s.posts.Create(ctx, &domain.Post{
		AuthorID:        author.ID,
		Header:          draft.Header,
		Body:            draft.Body,
		AuthorFirstName: author.FirstName,
		AuthorLastName:  author.LastName,
		AuthorPicture:   draft.Picture,
		PostedOn:        now,
		LastEdited:      now,
		Likes:           []domain.Like{},
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", created.ID).Str("user_id", author.ID).Msg("post created")
	return created, nil
}

// GetPost returns a live post. Soft-deleted posts are reported as not found.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("get post", err, domain.ErrPostNotFound)
	}
	if p.IsDeleted {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

// ListPosts returns live posts, newest first.
func (s *PostService) ListPosts(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.posts.List(ctx, ports.ListPostsFilter{
		AuthorID: in.AuthorID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdatePost replaces header and body. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, userID, id string, draft domain.PostDraft) (*domain.Post, error) {
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}

	if _, err := s.ownedPost(ctx, userID, id); err != nil {
		return nil, err
	}

	updated, err := s.posts.UpdateContent(ctx, id, draft.Header, draft.Body)
	if err != nil {
		return nil, wrapNotFound("update post", err, domain.ErrPostNotFound)
	}
	return updated, nil
}

// DeletePost soft-deletes a post. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, userID, id string) error {
	if _, err := s.ownedPost(ctx, userID, id); err != nil {
		return err
	}
	if err := s.posts.SoftDelete(ctx, id); err != nil {
		return wrapNotFound("delete post", err, domain.ErrPostNotFound)
	}
	s.log.Info().Str("post_id", id).Str("user_id", userID).Msg("post removed")
	return nil
}

// LikePost adds userID to the post's likes once.
func (s *PostService) LikePost(ctx context.Context, userID, id string) ([]domain.Like, error) {
	p, err := s.likeTarget(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(userID) {
		return nil, domain.ErrAlreadyLiked
	}

	likes, err := s.posts.AddLike(ctx, id, userID)
	if err != nil {
		return nil, wrapLike("like post", err)
	}
	return likes, nil
}

// UnlikePost removes userID's like.
func (s *PostService) UnlikePost(ctx context.Context, userID, id string) ([]domain.Like, error) {
	p, err := s.likeTarget(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !p.LikedBy(userID) {
		return nil, domain.ErrNotLiked
	}

	likes, err := s.posts.RemoveLike(ctx, id, userID)
	if err != nil {
		return nil, wrapLike("unlike post", err)
	}
	return likes, nil
}

func (s *PostService) ownedPost(ctx context.Context, userID, id string) (*domain.Post, error) {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (s *PostService) likeTarget(ctx context.Context, userID, id string) (*domain.Post, error) {
	disabled, err := s.status.disabled(ctx, userID)
	if err != nil {
		return nil, wrapNotFound("check account", err, domain.ErrUserNotFound)
	}
	if disabled {
		return nil, domain.ErrAccountDisabled
	}
	return s.GetPost(ctx, id)
}

// wrapNotFound passes sentinel through untouched and adds op context to
// anything else.
func wrapNotFound(op string, err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

func wrapLike(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyLiked), errors.Is(err, domain.ErrNotLiked), errors.Is(err, domain.ErrPostNotFound):
		return err
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = defaultPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
