package pkg

import (
	"net/http"
	"time"
)

const (
	SessionCookieName = "user_session"
	SessionQueryParam = "session"
)

// SessionFromRequest - returns the canonical session ID carried by the request cookie or query string.
func SessionFromRequest(req *http.Request) (string, bool) {
	if cookie, err := req.Cookie(SessionCookieName); err == nil {
		if id, ok := NormalizeSessionID(cookie.Value); ok {
			return id, true
		}
	}

	if id, ok := NormalizeSessionID(req.URL.Query().Get(SessionQueryParam)); ok {
		return id, true
	}

	return "", false
}

// NewSessionCookie - builds the cookie that binds a browser to its session.
func NewSessionCookie(sessionID string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}

	return cookie
}
