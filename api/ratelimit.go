package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTTL is how long a client may stay silent before its bucket is dropped.
// Buckets refill completely within a minute.
const idleTTL = time.Minute

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client IP
type clientLimiter struct {
	clients   map[string]*clientEntry
	mu        sync.Mutex
	r         rate.Limit
	b         int
	lastPrune time.Time
	now       func() time.Time
}

// newClientLimiter allows requests per minute for each client, with bursts of
// up to the same number.
func newClientLimiter(requests int) *clientLimiter {
	return &clientLimiter{
		clients:   make(map[string]*clientEntry),
		r:         rate.Every(time.Minute / time.Duration(requests)),
		b:         requests,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

func (l *clientLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) >= idleTTL {
		l.prune(now)
	}

	entry, exists := l.clients[clientIP]
	if !exists {
		entry = &clientEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// prune drops idle clients. Callers hold mu.
func (l *clientLimiter) prune(now time.Time) {
	for ip, entry := range l.clients {
		if now.Sub(entry.lastSeen) >= idleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastPrune = now
}

// RateLimiter rejects clients that exceed requestsPerMinute. A non-positive
// limit disables it.
func RateLimiter(requestsPerMinute int) gin.HandlerFunc {
	if requestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newClientLimiter(requestsPerMinute)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
