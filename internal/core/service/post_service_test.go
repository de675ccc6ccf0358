package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

type postFixture struct {
	svc   *PostService
	posts *stubPostRepo
	users *stubUserRepo
	cache *stubCache
	clock time.Time
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	f := &postFixture{
		posts: newStubPostRepo(),
		users: newStubUserRepo(),
		cache: newStubCache(),
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewPostService(f.posts, f.users, f.cache, zerolog.Nop())
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func (f *postFixture) addUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{FirstName: "Ann", LastName: "Lee", Email: email})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func draft() domain.PostDraft {
	return domain.PostDraft{Header: "Hello", Body: "First post", Picture: "https://img.example.com/a.png"}
}

func TestPostService_CreatePost_SnapshotsAuthor(t *testing.T) {
	f := newPostFixture(t)
	u := f.addUser(t, "ann@x.com")

	p, err := f.svc.CreatePost(context.Background(), u.ID, draft())
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.AuthorID != u.ID || p.AuthorFirstName != "Ann" || p.AuthorLastName != "Lee" {
		t.Fatalf("unexpected author snapshot: %+v", p)
	}
	if p.AuthorPicture != "https://img.example.com/a.png" {
		t.Fatalf("picture not kept: %q", p.AuthorPicture)
	}
	if !p.PostedOn.Equal(p.LastEdited) {
		t.Fatalf("lastEdited should default to postedOn")
	}
	if p.IsDeleted || len(p.Likes) != 0 {
		t.Fatalf("new post must be live with no likes: %+v", p)
	}
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	f := newPostFixture(t)
	u := f.addUser(t, "ann@x.com")

	_, err := f.svc.CreatePost(context.Background(), u.ID, domain.PostDraft{Picture: "not a url"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", ve.Fields)
	}
}

func TestPostService_CreatePost_DisabledAuthor(t *testing.T) {
	f := newPostFixture(t)
	u := f.addUser(t, "ann@x.com")
	_ = f.users.SetDisabled(context.Background(), u.ID, true)

	if _, err := f.svc.CreatePost(context.Background(), u.ID, draft()); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestPostService_CreatePost_UnknownAuthor(t *testing.T) {
	f := newPostFixture(t)

	if _, err := f.svc.CreatePost(context.Background(), "ghost", draft()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostService_GetPost_HidesDeleted(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	u := f.addUser(t, "ann@x.com")
	p, _ := f.svc.CreatePost(ctx, u.ID, draft())

	if _, err := f.svc.GetPost(ctx, p.ID); err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if err := f.svc.DeletePost(ctx, u.ID, p.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := f.svc.GetPost(ctx, p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}

	stored, _ := f.posts.FindByID(ctx, p.ID)
	if stored == nil || !stored.IsDeleted {
		t.Fatalf("soft delete must keep the document")
	}
}

func TestPostService_UpdateAndDelete_AuthorOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "ann@x.com")
	other := f.addUser(t, "bob@x.com")
	p, _ := f.svc.CreatePost(ctx, author.ID, draft())

	edit := domain.PostDraft{Header: "Edited", Body: "New body"}
	if _, err := f.svc.UpdatePost(ctx, other.ID, p.ID, edit); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if err := f.svc.DeletePost(ctx, other.ID, p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	updated, err := f.svc.UpdatePost(ctx, author.ID, p.ID, edit)
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Header != "Edited" || updated.Body != "New body" {
		t.Fatalf("content not updated: %+v", updated)
	}
	if !updated.LastEdited.After(p.LastEdited) {
		t.Fatalf("lastEdited not bumped")
	}
}

func TestPostService_LikeUnlike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "ann@x.com")
	fan := f.addUser(t, "bob@x.com")
	p, _ := f.svc.CreatePost(ctx, author.ID, draft())

	likes, err := f.svc.LikePost(ctx, fan.ID, p.ID)
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != fan.ID {
		t.Fatalf("unexpected likes: %+v", likes)
	}

	if _, err := f.svc.LikePost(ctx, fan.ID, p.ID); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	likes, err = f.svc.UnlikePost(ctx, fan.ID, p.ID)
	if err != nil {
		t.Fatalf("UnlikePost: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected no likes, got %+v", likes)
	}

	if _, err := f.svc.UnlikePost(ctx, fan.ID, p.ID); !errors.Is(err, domain.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

func TestPostService_Like_DisabledUserUsesCache(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "ann@x.com")
	fan := f.addUser(t, "bob@x.com")
	p, _ := f.svc.CreatePost(ctx, author.ID, draft())

	_ = f.cache.Store(ctx, fan.ID, true)

	if _, err := f.svc.LikePost(ctx, fan.ID, p.ID); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestPostService_Like_DeletedPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "ann@x.com")
	p, _ := f.svc.CreatePost(ctx, author.ID, draft())
	_ = f.svc.DeletePost(ctx, author.ID, p.ID)

	if _, err := f.svc.LikePost(ctx, author.ID, p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListPosts(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	ann := f.addUser(t, "ann@x.com")
	bob := f.addUser(t, "bob@x.com")

	var ids []string
	for i := 0; i < 3; i++ {
		p, _ := f.svc.CreatePost(ctx, ann.ID, draft())
		ids = append(ids, p.ID)
	}
	bobs, _ := f.svc.CreatePost(ctx, bob.ID, draft())
	_ = f.svc.DeletePost(ctx, ann.ID, ids[0])

	res, err := f.svc.ListPosts(ctx, ports.ListPostsInput{})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if res.Total != 3 || res.Page != 1 || res.Limit != defaultPageLimit || res.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", res)
	}
	if res.Items[0].ID != bobs.ID {
		t.Fatalf("expected newest first, got %s", res.Items[0].ID)
	}

	res, err = f.svc.ListPosts(ctx, ports.ListPostsInput{AuthorID: ann.ID, Limit: 1, Page: 2})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if res.Total != 2 || res.TotalPages != 2 || len(res.Items) != 1 || res.Items[0].ID != ids[1] {
		t.Fatalf("unexpected author page: %+v", res)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageLimit},
		{-3, 5, 1, 5},
		{2, 500, 2, maxPageLimit},
		{4, 100, 4, 100},
	}
	for _, tt := range tests {
		p, l := normalizePage(tt.page, tt.limit)
		if p != tt.wantPage || l != tt.wantLimit {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.limit, p, l, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := totalPages(0, 20); got != 0 {
		t.Errorf("totalPages(0) = %d", got)
	}
	if got := totalPages(41, 20); got != 3 {
		t.Errorf("totalPages(41, 20) = %d", got)
	}
	if got := totalPages(40, 20); got != 2 {
		t.Errorf("totalPages(40, 20) = %d", got)
	}
}
