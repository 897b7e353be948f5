package rpc

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// rateLimiter throttles mutating requests per caller, identified by
// X-API-Key if present and otherwise by remote IP, the same precedence the
// teacher's gateway middleware uses.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	perSec   float64
	burst    int
}

func newRateLimiter(perSec float64, burst int) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*rate.Limiter),
		perSec:   perSec,
		burst:    burst,
	}
}

func (rl *rateLimiter) limiterFor(id string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.visitors[id]
	if !ok {
		l = rate.NewLimiter(rate.Limit(rl.perSec), rl.burst)
		rl.visitors[id] = l
	}
	return l
}

// Middleware rejects requests past the per-caller burst with 429.
func (rl *rateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiterFor(callerID(r)).Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func callerID(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return "api-key:" + key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
