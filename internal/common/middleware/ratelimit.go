package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"miniapp-auth-backend/internal/common/errors"
)

// limiterTTL is how long an idle client keeps its limiter before cleanup.
const limiterTTL = 10 * time.Minute

type clientLimiter struct {
	lim     *rate.Limiter
	lastHit time.Time
}

// RateLimiter tracks a token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	r        rate.Limit
	b        int
}

// NewRateLimiter creates a per-IP limiter allowing r requests per second
// with the given burst.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		r:        rate.Limit(r),
		b:        burst,
	}
}

func (s *RateLimiter) allow(ip string) bool {
	if ip == "" {
		ip = "unknown"
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	// lazy cleanup
	for k, v := range s.limiters {
		if now.Sub(v.lastHit) > limiterTTL {
			delete(s.limiters, k)
		}
	}

	cl, ok := s.limiters[ip]
	if !ok {
		cl = &clientLimiter{
			lim: rate.NewLimiter(s.r, s.b),
		}
		s.limiters[ip] = cl
	}

	cl.lastHit = now
	return cl.lim.Allow()
}

// Middleware rejects requests over the per-IP budget with 429.
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.allow(c.ClientIP()) {
			AbortWithAppError(c, errors.New(errors.ErrCodeTooManyRequests, "Too many requests"))
			return
		}
		c.Next()
	}
}
