package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter decides whether a client may issue another request in the current window.
type RateLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// rateLimitEntry is one client's counter within a fixed window.
type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// MemoryRateLimiter keeps fixed-window counters in process memory. Entries are
// never evicted; they live as long as the process.
type MemoryRateLimiter struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// NewMemoryRateLimiter creates a limiter allowing maxRequests per window per client.
func NewMemoryRateLimiter(maxRequests int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		entries:     make(map[string]*rateLimitEntry),
	}
}

// Allow counts the request and reports whether the client is still within its limit.
func (rl *MemoryRateLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.entries[clientID]
	if !exists {
		entry = &rateLimitEntry{resetTime: now.Add(rl.window)}
		rl.entries[clientID] = entry
	}

	if now.After(entry.resetTime) {
		entry.count = 1
		entry.resetTime = now.Add(rl.window)
	} else {
		entry.count++
	}

	return entry.count <= rl.maxRequests, nil
}

// RedisRateLimiter shares fixed-window counters between instances through Redis.
type RedisRateLimiter struct {
	client      redis.UniversalClient
	maxRequests int
	window      time.Duration
	prefix      string
}

// NewRedisRateLimiter creates a Redis-backed limiter using keys under prefix.
func NewRedisRateLimiter(client redis.UniversalClient, maxRequests int, window time.Duration, prefix string) *RedisRateLimiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisRateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		prefix:      prefix,
	}
}

// Allow increments the client's counter and reads its TTL in one transaction.
// A counter without an expiry (first hit, or a PEXPIRE that failed earlier)
// gets the window applied.
func (rl *RedisRateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := rl.prefix + clientID

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("incrementing rate limit counter: %w", err)
	}

	count := incr.Val()
	if ttl.Val() < 0 {
		if err := rl.client.PExpire(ctx, key, rl.window).Err(); err != nil {
			return true, fmt.Errorf("setting rate limit window: %w", err)
		}
	}

	return count <= int64(rl.maxRequests), nil
}
