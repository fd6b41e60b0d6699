package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc picks the bucket a request is charged to.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP charges authenticated staff per user and everyone else per
// client IP.
func KeyByUserOrIP() keyFunc { return ClientID }

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a process-local token bucket per key. Idle buckets are
// evicted opportunistically.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter allows up to max requests per window for each key, with
// tokens refilled evenly across the window. max <= 0 is treated as 1.
func NewRateLimiter(max int, window time.Duration, keyFn keyFunc) *RateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Second
	}
	ttl := 2 * window
	if ttl < 10*time.Minute {
		ttl = 10 * time.Minute
	}
	return &RateLimiter{
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      ttl,
	}
}

// getVisitor returns the limiter for key. Every 5000 lookups idle buckets are
// swept first, so a stale bucket is replaced rather than refreshed.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator exempted this request.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the limit. Rejected requests get 429 with Retry-After set
// to the seconds until the next token.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}
		lim := rl.getVisitor(rl.keyFn(c))
		if lim.Allow() {
			c.Next()
			return
		}

		wait := time.Second
		if r := lim.Reserve(); r.OK() {
			wait = r.Delay()
			r.Cancel()
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait.Seconds())))))
		abort(c, http.StatusTooManyRequests, codeRateLimited,
			"Too many requests from this IP, please try again later.")
	}
}
