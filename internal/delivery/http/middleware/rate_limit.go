package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// OnLimit writes the rejection; defaults to the JSON error envelope
	OnLimit gin.HandlerFunc
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is available and in
// process memory otherwise (or when Redis errors).
type RateLimiter struct {
	config RateLimitConfig
	redis  *goredis.Client
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// ContactRateLimitConfig limits contact form posts per client IP.
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:contact:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// NewRateLimiter builds a limiter. client may be nil.
func NewRateLimiter(config RateLimitConfig, client *goredis.Client) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.OnLimit == nil {
		config.OnLimit = func(c *gin.Context) {
			c.Error(apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
		}
	}
	return &RateLimiter{
		config:  config,
		redis:   client,
		now:     time.Now,
		entries: make(map[string]*rateLimitEntry),
	}
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		fullKey := l.config.KeyPrefix + l.config.KeyFunc(c)

		count, resetAt := l.hit(c.Request.Context(), fullKey)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > l.config.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit triggered", "request_id", requestIDFrom(c), "ip", c.ClientIP(), "path", c.FullPath())

			l.config.OnLimit(c)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(l.config.Limit-count))
		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if l.redis != nil {
		count, resetAt, err := l.checkRedis(ctx, key)
		if err == nil {
			return count, resetAt
		}
		logger.Log.Warn("Redis rate limit failed, using in-memory counter", "error", err)
	}
	return l.checkInMemory(key)
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (l *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(l.config.Window.Seconds())

	result, err := l.redis.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), l.now().Add(time.Duration(ttl) * time.Second), nil
}

// checkInMemory is a fixed-window counter that also sweeps expired keys.
func (l *RateLimiter) checkInMemory(key string) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &rateLimitEntry{resetAt: now.Add(l.config.Window)}
		l.entries[key] = entry
	}
	entry.count++

	return entry.count, entry.resetAt
}
