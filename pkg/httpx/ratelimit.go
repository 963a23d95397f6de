package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token-bucket limit over a time window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Limit profiles for the different endpoint families.
var (
	// StrictLimit guards credential endpoints (login, register) against
	// brute force: 5 requests a minute per key.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit for authenticated write operations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 30}

	// LenientLimit for authenticated reads and public listings.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 120}
)

// KeyExtractor groups requests for limiting purposes (IP, user id, ...).
type KeyExtractor func(*http.Request) string

// IPKey extracts the client IP, honouring proxy headers.
func IPKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// PrincipalKey keys on the authenticated user, falling back to IP when the
// gate attached no principal.
func PrincipalKey(r *http.Request) string {
	if p, ok := PrincipalFromContext(r.Context()); ok && p.ID != "" {
		return "user:" + p.ID
	}
	return "ip:" + IPKey(r)
}

// limiterPool lazily creates one rate.Limiter per key and sheds idle
// entries so ephemeral keys don't accumulate forever.
type limiterPool struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (p *limiterPool) get(key string) *rate.Limiter {
	if l, ok := p.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := p.limiters.LoadOrStore(key, rate.NewLimiter(p.rate, p.burst))
	p.maybeCleanup()
	return l.(*rate.Limiter)
}

func (p *limiterPool) maybeCleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCleanup) < 5*time.Minute {
		return
	}
	p.lastCleanup = time.Now()

	// A limiter with a full bucket hasn't been touched in a while.
	p.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(p.burst) {
			p.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit builds a limiting middleware from a profile and a key extractor.
func RateLimit(cfg RateLimitConfig, key KeyExtractor) Middleware {
	pool := &limiterPool{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			limiter := pool.get(k)
			if !limiter.Allow() {
				res := limiter.Reserve()
				delay := res.Delay()
				res.Cancel()

				retryAfter := max(int(delay.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				log.Warn("rate limit exceeded", "key", k, "path", r.URL.Path)
				WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP only.
func RateLimitByIP(cfg RateLimitConfig) Middleware { return RateLimit(cfg, IPKey) }

// RateLimitByUser limits by authenticated user, IP as fallback.
func RateLimitByUser(cfg RateLimitConfig) Middleware { return RateLimit(cfg, PrincipalKey) }
