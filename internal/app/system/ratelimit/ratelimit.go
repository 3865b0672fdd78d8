// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewdata"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// Limiter provides rate limiting using a fixed window per key.
// It is safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int           // max requests per window
	duration  time.Duration // window duration
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a new rate limiter.
// limit: maximum requests allowed per duration
// duration: the time window for counting requests
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow checks if a request from the given key should be allowed.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	w, exists := l.windows[key]

	// If no window exists or window expired, create new one
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || l.now().After(w.expiresAt) {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset clears the rate limit for a specific key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep drops expired windows at most once per two window lengths.
// It must be called with l.mu held.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < 2*l.duration {
		return
	}
	l.lastSweep = now
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	// X-Forwarded-For is a comma-separated list; the first entry is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}

// Mutations limits state-changing requests (anything but GET, HEAD and
// OPTIONS) per client IP. Reads are never limited. A nil limiter disables
// the middleware.
func Mutations(l *Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			ip := ClientIP(r)
			if !l.Allow(ip) {
				logger.Warn("mutation rate limited",
					zap.String("ip", ip),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				data := viewdata.NewBaseVM(r, models.GuestUser(), "Calma", "/")
				data.Notice = notice.Fail("Muitas ações em pouco tempo. Aguarde um instante e tente de novo.")
				viewdata.JSON(w, http.StatusTooManyRequests, data)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
