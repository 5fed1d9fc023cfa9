package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/legalclear/backend/pkg/logger"
)

// clientWindow tracks one client's request count within its current window.
type clientWindow struct {
	count   int
	started time.Time
}

// RateLimiter counts requests per client IP over a sliding window. Each
// client gets its own window so one noisy client does not reset the clock
// for everyone.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientWindow
	limit     int
	window    time.Duration
	lastSweep time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*clientWindow),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the client may proceed, counting this request.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	cw, ok := l.clients[clientIP]
	if !ok || now.Sub(cw.started) > l.window {
		l.clients[clientIP] = &clientWindow{count: 1, started: now}
		return true
	}

	if cw.count >= l.limit {
		return false
	}
	cw.count++
	return true
}

// sweep drops clients whose window has expired so the map stays bounded by
// the set of clients active within the last window. Runs at most once per
// window; the caller holds the lock.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) <= l.window {
		return
	}
	for ip, cw := range l.clients {
		if now.Sub(cw.started) > l.window {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// RateLimit limits requests per client IP. Health checks are exempt so
// orchestration probes never get throttled.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if !limiter.Allow(clientIP) {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", clientIP)

			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
