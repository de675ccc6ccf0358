package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

var errStoreDown = fmt.Errorf("stub: %w", domain.ErrStoreUnavailable)

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	failGet bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet {
		return nil, errStoreDown
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet {
		return nil, errStoreDown
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetDisabled(_ context.Context, id string, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsDisabled = disabled
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string]bool
	lookups int
	fail    bool
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]bool)}
}

func (c *stubCache) Lookup(_ context.Context, userID string) (bool, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.fail {
		return false, false, errors.New("cache down")
	}
	v, ok := c.entries[userID]
	return v, ok, nil
}

func (c *stubCache) Store(_ context.Context, userID string, disabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	c.entries[userID] = disabled
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	delete(c.entries, userID)
	return nil
}

func (c *stubCache) cached(userID string) (disabled, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	disabled, ok = c.entries[userID]
	return disabled, ok
}

// gatedUserRepo parks SetDisabled(..., true) after the store write until
// release is closed, so a concurrent Enable can finish first.
type gatedUserRepo struct {
	*stubUserRepo
	written chan struct{}
	release chan struct{}
}

func (r *gatedUserRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	if err := r.stubUserRepo.SetDisabled(ctx, id, disabled); err != nil {
		return err
	}
	if disabled {
		close(r.written)
		<-r.release
	}
	return nil
}

// uniqueIndexRepo misses on FindByEmail and reports a duplicate on Create,
// as when two registrations race past the lookup.
type uniqueIndexRepo struct {
	*stubUserRepo
}

func (r uniqueIndexRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r uniqueIndexRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, fmt.Errorf("insert user: %w", domain.ErrDuplicateEmail)
}

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.AccountEvent
}

func (p *stubPublisher) Enqueue(e domain.AccountEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *stubPublisher) types() []domain.AccountEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AccountEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type stubPostRepo struct {
	mu     sync.Mutex
	posts  map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = append([]domain.Like{}, p.Likes...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copy := clonePost(p)
	copy.ID = fmt.Sprintf("p%d", r.nextID)
	r.posts[copy.ID] = clonePost(copy)
	return copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context, f ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Post
	for _, p := range r.posts {
		if p.IsDeleted && !f.IncludeDeleted {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		matched = append(matched, clonePost(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PostedOn.After(matched[j].PostedOn) })

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*domain.Post{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubPostRepo) UpdateContent(_ context.Context, id, header, body string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Header, p.Body = header, body
	p.LastEdited = p.LastEdited.Add(1)
	return clonePost(p), nil
}

func (r *stubPostRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *stubPostRepo) AddLike(_ context.Context, id, userID string) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Likes = append(p.Likes, domain.Like{UserID: userID})
	return append([]domain.Like{}, p.Likes...), nil
}

func (r *stubPostRepo) RemoveLike(_ context.Context, id, userID string) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	kept := []domain.Like{}
	for _, l := range p.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	return append([]domain.Like{}, kept...), nil
}

type stubEventRepo struct {
	mu     sync.Mutex
	events []domain.AccountEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.AccountEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}
