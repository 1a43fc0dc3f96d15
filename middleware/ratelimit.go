package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket. Idle clients are
// dropped after ttl to keep the map bounded.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	lastScan time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(perSecond),
		burst:   burst,
		ttl:     10 * time.Minute,
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		client, ok := rl.clients[ip]
		if !ok {
			client = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
			rl.clients[ip] = client
		}
		client.lastSeen = time.Now()

		if time.Since(rl.lastScan) > rl.ttl {
			rl.evictIdle()
			rl.lastScan = time.Now()
		}
		rl.mu.Unlock()

		if !client.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// evictIdle removes clients not seen within the ttl. Caller holds the lock.
func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-rl.ttl)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}
