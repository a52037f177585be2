package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerReferrerPolicy          = "Referrer-Policy"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerReferrerPolicy, "no-referrer")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'none'; img-src 'self'; media-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Idle buckets are
// evicted on access once they are older than ttl.
type IPRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(limit rate.Limit, burst int, ttl time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Allow reports whether ip may make another request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.ttl {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > l.ttl {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429. Requests that match
// skip are not counted.
func (l *IPRateLimiter) Middleware(message string, skip func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip != nil && skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !l.Allow(clientIP(r)) {
				tooManyRequests(w, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

// --- Per-IP limits used in production ---

const (
	globalRateLimitRPS   = 5
	globalRateLimitBurst = 30
	uploadRateLimitEvery = 5 * time.Second
	uploadRateLimitBurst = 5
	limiterTTL           = 30 * time.Minute
)

func isHealthCheck(r *http.Request) bool {
	return r.URL.Path == "/health"
}

// isUpload matches the multipart endpoints, which get a stricter budget.
func isUpload(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	return r.URL.Path == "/api/photos" || r.URL.Path == "/api/voice-diary" ||
		strings.HasPrefix(r.URL.Path, "/api/photos/") || strings.HasPrefix(r.URL.Path, "/api/voice-diary/")
}

// GlobalRateLimit limits every request except health checks.
func GlobalRateLimit() func(http.Handler) http.Handler {
	l := NewIPRateLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst, limiterTTL)
	return l.Middleware("Too many requests. Please slow down.", isHealthCheck)
}

// UploadRateLimit applies a stricter limit to photo and voice uploads. Use after GlobalRateLimit.
func UploadRateLimit() func(http.Handler) http.Handler {
	l := NewIPRateLimiter(rate.Every(uploadRateLimitEvery), uploadRateLimitBurst, limiterTTL)
	return l.Middleware("Too many uploads. Please try again later.", func(r *http.Request) bool { return !isUpload(r) })
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → GlobalRateLimit → UploadRateLimit.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		GlobalRateLimit(),
		UploadRateLimit(),
	}
}
