package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

// limiterIdleTTL is how long a client IP may stay silent before its limiter
// is dropped. A limiter idle that long has refilled its whole burst anyway.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds one limiter per client IP.
type rateLimiterStore struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiterStore(perMinute int) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		ttl:      limiterIdleTTL,
		now:      time.Now,
	}
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > s.ttl {
		s.sweep(now)
	}

	e, exists := s.limiters[ip]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(s.every, s.burst)}
		s.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops limiters not used within ttl. Callers hold mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	for ip, e := range s.limiters {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware allows perMinute requests per client IP. A non-positive
// limit disables it.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(newRateLimiterStore(perMinute))
}

func rateLimit(store *rateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			zerolog.Ctx(c.Request.Context()).Warn().Str("ip", ip).Msg("rate limit exceeded")
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
