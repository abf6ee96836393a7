package middleware

import (
	"context"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// SessionMiddleware resolves the session cookie into the request context. Requests
// without a valid session continue anonymously and a stale cookie is cleared.
func (mw *Middleware) SessionMiddleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := lib.GetCookieValue(cookieName, r)
			if err != nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := mw.authService.Authenticate(r.Context(), token)
			if err != nil {
				mw.logger.Debug("Ignoring invalid session", gecho.Field("error", err))
				lib.ClearCookie(cookieName, w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession hands anonymous requests to unauthenticated instead of next.
// It must run after SessionMiddleware.
func (mw *Middleware) RequireSession(unauthenticated http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetClaimsFromContext(r.Context()); !ok {
				unauthenticated(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.SessionClaims)
	return claims, ok
}

// CustomerID returns the signed-in customer, or 0.
func CustomerID(ctx context.Context) int64 {
	if claims, ok := GetClaimsFromContext(ctx); ok {
		return claims.CustomerID
	}
	return 0
}
