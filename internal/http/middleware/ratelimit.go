package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// State is per limiter and per process; it is the fallback when Redis is
// not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		ci, ok := clients[ip]
		if !ok || now.Sub(ci.last) > window {
			ci = &clientInfo{last: now}
			clients[ip] = ci
		}
		ci.count++
		count := ci.count
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit uses Redis when InitRedisRateLimiter connected, and the
// in-process limiter otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if RedisEnabled() {
		return RedisRateLimit(maxRequests, window)
	}
	return SimpleRateLimit(maxRequests, window)
}

// MutationRateLimit applies a separate limit to POST, PUT, PATCH and DELETE
// so reads stay cheap while writes are throttled harder.
func MutationRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var limit gin.HandlerFunc
	if RedisEnabled() {
		limit = redisRateLimit("mut_rl:", maxRequests, window)
	} else {
		limit = SimpleRateLimit(maxRequests, window)
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			limit(c)
		default:
			c.Next()
		}
	}
}
