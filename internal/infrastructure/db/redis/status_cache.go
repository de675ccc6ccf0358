package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultStatusTTL = 10 * time.Minute

	statusEnabled  = "enabled"
	statusDisabled = "disabled"
)

// StatusCache remembers each account's disabled flag.
// Key format: account:status:<user_id>
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache creates a StatusCache wrapping the given Redis client.
// A non-positive ttl falls back to defaultStatusTTL.
func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = defaultStatusTTL
	}
	return &StatusCache{client: client, ttl: ttl}
}

// Lookup returns the cached flag. found is false on a cache miss.
func (c *StatusCache) Lookup(ctx context.Context, userID string) (disabled, found bool, err error) {
	v, err := c.client.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("status lookup: %w", err)
	}

	switch v {
	case statusDisabled:
		return true, true, nil
	case statusEnabled:
		return false, true, nil
	default:
		// Unknown payloads are treated as a miss and get overwritten on the next Store.
		return false, false, nil
	}
}

// Store records the flag for ttl.
func (c *StatusCache) Store(ctx context.Context, userID string, disabled bool) error {
	if err := c.client.Set(ctx, c.key(userID), encodeStatus(disabled), c.ttl).Err(); err != nil {
		return fmt.Errorf("status store: %w", err)
	}
	return nil
}

// Invalidate drops the cached flag so the next Lookup misses.
func (c *StatusCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("status invalidate: %w", err)
	}
	return nil
}

func (c *StatusCache) key(userID string) string {
	return fmt.Sprintf("account:status:%s", userID)
}

func encodeStatus(disabled bool) string {
	if disabled {
		return statusDisabled
	}
	return statusEnabled
}
