package middleware

import (
	"net/http"
	"strings"

	"github.com/MonkyMars/gecho"
)

// RequestLogging logs every request except metric scrapes and health probes.
func (mw *Middleware) RequestLogging() func(http.Handler) http.Handler {
	logged := gecho.Handlers.CreateLoggingMiddleware(mw.logger)

	return func(next http.Handler) http.Handler {
		withLog := logged(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" || strings.HasPrefix(r.URL.Path, "/health/") {
				next.ServeHTTP(w, r)
				return
			}
			withLog.ServeHTTP(w, r)
		})
	}
}
