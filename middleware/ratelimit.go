package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"stockfolio/metrics"
)

// Limiter counts hits on key and reports whether one more is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter: the first hit in a window starts
// its expiry, later hits only increment.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	if rdb == nil {
		panic("Redis client cannot be nil for RedisLimiter")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RedisLimiter")
	}
	if window <= 0 {
		panic("window duration must be positive for RedisLimiter")
	}
	return &RedisLimiter{rdb: rdb, max: int64(maxRequests), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "ratelimit:" + key

	pipe := l.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis: rate limit pipeline: %w", err)
	}

	// A negative TTL means no expiry is set yet on this window.
	if ttl.Val() < 0 {
		if err := l.rdb.PExpire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis: set rate limit window: %w", err)
		}
	}
	return incr.Val() <= l.max, nil
}

// RateLimit rejects a client IP with 429 once the limiter says no. A limiter
// failure is logged and the request is let through.
func RateLimit(limiter Limiter, m *metrics.Metrics, log logrus.FieldLogger) gin.HandlerFunc {
	if limiter == nil {
		panic("Limiter cannot be nil for RateLimit middleware")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WithError(err).Error("RateLimit: limiter failed, allowing request")
			c.Next()
			return
		}
		if !allowed {
			m.IncrementRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
