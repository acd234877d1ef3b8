// Package ratelimit provides rate limiting middleware using token bucket algorithm.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware"
)

// idleAfter is how long an untouched bucket is kept before it is dropped.
const idleAfter = 10 * time.Minute

// bucket represents a token bucket for rate limiting.
type bucket struct {
	tokens   float64
	lastFill time.Time
	mu       sync.Mutex
}

// Limiter tracks rate limits per client.
type Limiter struct {
	perMinute int
	buckets   sync.Map // map[clientKey]*bucket
	now       func() time.Time
}

// New creates a limiter allowing perMinute requests per client (0 = unlimited).
func New(perMinute int) *Limiter {
	return &Limiter{perMinute: perMinute, now: time.Now}
}

// Allow checks if a request is allowed under the rate limit.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	if l.perMinute <= 0 {
		return true
	}

	now := l.now()
	val, _ := l.buckets.LoadOrStore(key, &bucket{
		tokens:   float64(l.perMinute),
		lastFill: now,
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Refill tokens based on elapsed time
	elapsed := now.Sub(b.lastFill).Seconds()
	refillRate := float64(l.perMinute) / 60.0 // tokens per second
	b.tokens += elapsed * refillRate
	if b.tokens > float64(l.perMinute) {
		b.tokens = float64(l.perMinute) // cap at max capacity
	}
	b.lastFill = now

	if b.tokens >= 1.0 {
		b.tokens--
		return true
	}
	return false
}

// Sweep drops buckets idle for longer than idleAfter. A dropped bucket
// would have refilled to capacity anyway.
func (l *Limiter) Sweep() int {
	cutoff := l.now().Add(-idleAfter)
	removed := 0
	l.buckets.Range(func(key, val any) bool {
		b := val.(*bucket)
		b.mu.Lock()
		idle := b.lastFill.Before(cutoff)
		b.mu.Unlock()
		if idle {
			l.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartSweeper runs Sweep periodically until stop is closed.
func (l *Limiter) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

// Middleware returns an HTTP middleware that enforces the limit per client IP.
// clientIP picks the key; nil means middleware.ClientIP.
func Middleware(limiter *Limiter, clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	if clientIP == nil {
		clientIP = middleware.ClientIP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				writeTooManyRequests(w, limiter.perMinute)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeTooManyRequests writes a JSON 429 response.
func writeTooManyRequests(w http.ResponseWriter, perMinute int) {
	retry := 60
	if perMinute > 0 {
		retry = (60 + perMinute - 1) / perMinute
	}
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	shared.WriteJSONError(w, "rate limit exceeded", http.StatusTooManyRequests)
}
