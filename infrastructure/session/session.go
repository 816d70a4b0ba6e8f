package session

import (
	"net/http"
	"time"
)

const CookieName = "X-Session-Token"

// Lifetime is how long a console login stays valid.
const Lifetime = 12 * time.Hour

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie in the browser.
func ClearCookie() *http.Cookie {
	return SessionCookie("", -1)
}

func DefaultExpiry() time.Time {
	return time.Now().Add(Lifetime)
}
