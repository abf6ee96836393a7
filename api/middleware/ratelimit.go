package middleware

import (
	"fmt"
	"maroon_shop/lib"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getRateLimitForEndpoint determines which rate limit to apply based on config
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (int, time.Duration) {
	// Writes
	if method == http.MethodPost || method == http.MethodPut {
		return mw.cfg.RateLimit.WriteLimit, mw.cfg.RateLimit.WriteWindow
	}

	// Listings count every row before paging
	if method == http.MethodGet && strings.HasPrefix(path, "/api/") && !strings.Contains(strings.TrimPrefix(path, "/api/"), "/") {
		return mw.cfg.RateLimit.ExpensiveLimit, mw.cfg.RateLimit.ExpensiveWindow
	}
	if method == http.MethodGet && strings.Contains(path, "/By") {
		return mw.cfg.RateLimit.ExpensiveLimit, mw.cfg.RateLimit.ExpensiveWindow
	}

	return mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// getClientIP extracts the client IP; chi's RealIP has already applied proxy headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 && !strings.HasSuffix(ip, "]") {
		ip = ip[:idx]
	}
	return ip
}

// rateLimitEndpoint replaces numeric path segments so ids do not explode the key space
func rateLimitEndpoint(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// RateLimitMiddleware counts requests per client and endpoint in redis. It fails open.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || !mw.cacheService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)
			endpoint := rateLimitEndpoint(r.URL.Path)

			count, err := mw.cacheService.IncrementRateLimit(r.Context(), clientIP, endpoint, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage(lib.ErrRateLimited.Error()),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"window":      window.String(),
						"retry_after": int(window.Seconds()),
					}),
					gecho.Send(),
				)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, limit-count)))
			next.ServeHTTP(w, r)
		})
	}
}
