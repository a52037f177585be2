package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitWindow is the fixed window for the Redis limiter.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the number of requests allowed per window.
	RateLimitMaxRequests = 240
	// DefaultRateLimitPrefix namespaces the counters. It must not overlap the
	// key-value store prefix or the counters are measured as stored records.
	DefaultRateLimitPrefix = "ratelimit:"
)

// RedisRateLimit is a fixed-window per-IP limiter whose counters live in
// Redis under keyPrefix, so several server processes share one budget. It
// fails open when Redis is unreachable.
func RedisRateLimit(client *redis.Client, keyPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthCheck(r) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			key := keyPrefix + clientIP(r)

			n, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("[RateLimit] redis unavailable, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			// First request in this window starts the TTL.
			if n == 1 {
				if err := client.Expire(ctx, key, RateLimitWindow).Err(); err != nil {
					log.Printf("[RateLimit] failed to set window on %s: %v", key, err)
				}
			}
			count := int(n)

			if count > RateLimitMaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
				tooManyRequests(w, fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", int(RateLimitWindow.Seconds())))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(RateLimitMaxRequests-count))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))
			next.ServeHTTP(w, r)
		})
	}
}
