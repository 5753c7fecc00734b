package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/rsmedika/inventaris/internal/config"
)

const keyRegenerate = "ai:regenerate:client:"

// NewRedisClient connects to the rate-limit redis. Returns nil when rate
// limiting is disabled; every consumer tolerates the nil.
func NewRedisClient(cfg config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     strings.TrimSpace(cfg.RateLimit.RedisAddr),
		Password: strings.TrimSpace(cfg.RateLimit.RedisPassword),
		DB:       cfg.RateLimit.RedisDB,
	})
}

// RegenerateLimiter throttles the worker-spawning AI endpoints. Every
// regeneration forks an OS process, so this is the knob that keeps a burst
// of callers from exhausting the process table.
type RegenerateLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewRegenerateLimiter(cfg config.Config, client *redis.Client) *RegenerateLimiter {
	if client == nil || !cfg.RateLimit.Enabled {
		return &RegenerateLimiter{}
	}
	return &RegenerateLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.RateLimit.RegenerateRate,
		burst:   cfg.RateLimit.RegenerateBurst,
	}
}

func (l *RegenerateLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Middleware rejects over-budget callers with 429. Redis trouble fails
// open: a broken limiter must not take the AI endpoints down with it.
func (l *RegenerateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Enabled() {
			c.Next()
			return
		}

		result, err := l.bucket.Allow(c.Request.Context(), keyRegenerate+c.ClientIP(), l.rate, l.burst)
		if err != nil {
			c.Next()
			return
		}
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limited",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}

// ProvideLocker exposes the shared redis lock used for per-item
// regeneration exclusion. Nil when rate limiting is disabled.
func ProvideLocker(client *redis.Client) *Locker {
	return NewLocker(client)
}
