package auth

import (
	"net/http"
	"strings"
)

const (
	AccessTokenCookie = "access_token"
	SessionCookie     = "pawmart_session"
	SessionHeader     = "X-Session-ID"
)

// ExtractAccessToken reads the backend access token, preferring the cookie
// over an Authorization: Bearer header.
func ExtractAccessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// ExtractSessionID reads the BFF session id from its cookie or header.
func ExtractSessionID(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// SessionCookieFor builds the cookie that binds a browser to a session.
// An empty id produces an expiring cookie.
func SessionCookieFor(id string, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if id == "" {
		c.MaxAge = -1
	}
	return c
}
