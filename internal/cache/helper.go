package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// PostTTL bounds how stale a cached post detail may get.
const PostTTL = 30 * time.Second

// PostKey returns the cache key for a post detail payload.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil and transport errors are both treated as a miss;
		// the caller falls through to the database.
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Fetch from source (DB)
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a single key (best-effort).
func Invalidate(ctx context.Context, key string) {
	if Client == nil {
		return
	}
	_ = Client.Del(ctx, key).Err()
}
