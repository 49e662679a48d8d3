package middleware

import (
	"net/http"
	"sync"
	"time"

	"travelhub/obs"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterStore hands out one token bucket per client IP.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newLimiterStore(perMinute int) *limiterStore {
	if perMinute < 1 {
		perMinute = 1
	}
	return &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(s.every, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows perMinute requests per client IP.
func RateLimitMiddleware(perMinute int, metrics *obs.Metrics) gin.HandlerFunc {
	store := newLimiterStore(perMinute)
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !store.get(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			metrics.IncRateLimitDrops()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.Envelope{
				Message: "Rate limit exceeded. Try again later.",
				Error:   "rate_limited",
			})
			return
		}
		c.Next()
	}
}
