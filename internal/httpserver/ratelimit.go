package httpserver

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per client IP, method and route,
// kept in Redis so every API instance shares it.
type RateLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *log.Logger
}

func NewRateLimiter(client *redis.Client, max int, window time.Duration, logger *log.Logger) *RateLimiter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if max <= 0 {
		max = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, max: max, window: window, logger: logger}
}

func (r *RateLimiter) key(c *gin.Context) string {
	return "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
}

// Middleware returns a pass-through handler when the limiter or its client is
// nil. Redis failures let the request through.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	if r == nil || r.client == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := r.key(c)

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			r.logger.Printf("rate limiter: incr failed key=%s error=%v", key, err)
			c.Next()
			return
		}
		if count == 1 {
			if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
				r.logger.Printf("rate limiter: expire failed key=%s error=%v", key, err)
			}
		}

		remaining := r.max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(r.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > r.max {
			ttl, err := r.client.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = r.window
			}
			c.Header("Retry-After", strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody("too many requests"))
			return
		}
		c.Next()
	}
}
