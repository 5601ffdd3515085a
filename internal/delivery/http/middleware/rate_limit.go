package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for a rate limiting middleware
// instance.
type RateLimitConfig struct {
	// Requests allowed per window.
	Limit int
	// Window duration.
	Window time.Duration
	// Redis key prefix, e.g. "rl:auth:".
	KeyPrefix string
}

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// memoryStore is the fallback counter used when Redis is unavailable.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

func (s *memoryStore) incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		// New window for this client, good moment to drop windows that
		// have already closed so the map stays bounded.
		s.sweep(now)
		e = &rateLimitEntry{resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt
}

// sweep removes expired windows. Caller must hold s.mu.
func (s *memoryStore) sweep(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
}

// RateLimit limits requests per client IP using a fixed window counter in
// Redis. When Redis is down it falls back to in-process counting, which
// is per-instance but still bounds abuse.
func RateLimit(client *goredis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	fallback := &memoryStore{entries: make(map[string]*rateLimitEntry)}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		count, resetAt, err := redisIncr(c, client, key, cfg.Window)
		if err != nil {
			logger.Log.Warn("rate limiter falling back to memory", "error", err)
			count, resetAt = fallback.incr(key, cfg.Window)
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Try again in %d seconds", retryAfter), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisIncr(c *gin.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	if client == nil {
		return 0, time.Time{}, goredis.ErrClosed
	}

	ctx := c.Request.Context()
	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}
	return int(incr.Val()), time.Now().Add(ttl.Val()), nil
}
