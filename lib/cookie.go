package lib

import (
	"maroon_shop/config"
	"net/http"
	"time"
)

// SetCookie sets an HttpOnly session cookie. Production cookies are Secure.
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie(key, val, expiry, int(time.Until(expiry).Seconds())))
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie(key, "", time.Now().Add(-time.Hour), -1))
}

func sessionCookie(key, val string, expiry time.Time, maxAge int) *http.Cookie {
	cfg := config.GetConfig()

	return &http.Cookie{
		Name:     key,
		Value:    val,
		Expires:  expiry,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   cfg.Web.CookieDomain,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	}
}
