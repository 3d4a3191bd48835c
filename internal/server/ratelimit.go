package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hireflow/internal/api"
)

// ipThrottle tracks one token bucket per client IP. It guards the
// unauthenticated auth endpoints against credential stuffing; quota
// enforcement for authenticated traffic lives in internal/entitlement.
type ipThrottle struct {
	mu      sync.Mutex
	clients map[string]*throttleEntry
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type throttleEntry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newIPThrottle(rps float64, burst int, idle time.Duration) *ipThrottle {
	th := &ipThrottle{
		clients: make(map[string]*throttleEntry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
	}
	go th.evictIdle()
	return th
}

// evictIdle drops buckets that have not been touched within the idle
// window so the map does not grow with every address ever seen.
func (th *ipThrottle) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		th.mu.Lock()
		for ip, e := range th.clients {
			if time.Since(e.lastSeen) > th.idle {
				delete(th.clients, ip)
			}
		}
		th.mu.Unlock()
	}
}

func (th *ipThrottle) allow(ip string) bool {
	th.mu.Lock()
	e, ok := th.clients[ip]
	if !ok {
		e = &throttleEntry{bucket: rate.NewLimiter(th.limit, th.burst)}
		th.clients[ip] = e
	}
	e.lastSeen = time.Now()
	th.mu.Unlock()

	return e.bucket.Allow()
}

// RateLimitMiddleware rejects requests over rps per client IP with 429.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	th := newIPThrottle(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		if !th.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{
				Error: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
