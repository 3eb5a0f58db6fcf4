// Package cookie builds the outbound Set-Cookie headers for session
// issuance and invalidation.
package cookie

import (
	"net/http"
	"time"
)

// Manager builds session cookies with a fixed name and policy. The defaults
// match what a bearer credential needs: HTTPS-only transport, no script
// access, same-site strict.
type Manager struct {
	name     string
	maxAge   int // seconds, mirrors the session TTL
	defaults Options
}

// NewManager creates a cookie manager for the given cookie name and session
// time-to-live.
func NewManager(name string, ttl time.Duration, opts ...Option) *Manager {
	o := Options{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{
		name:     name,
		maxAge:   int(ttl.Seconds()),
		defaults: o,
	}
}

// Name returns the cookie key the session token is carried under.
func (m *Manager) Name() string {
	return m.name
}

// Session builds the issuance cookie carrying the session token, with
// max-age equal to the session TTL.
func (m *Manager) Session(token string) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    token,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   m.maxAge,
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	}
}

// Expiry builds the invalidation cookie: same key, empty value, Max-Age=0,
// instructing the client to drop the cookie immediately. Used for logout and
// for any request presenting an invalid or expired session.
func (m *Manager) Expiry() *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1, // serializes as Max-Age=0
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	}
}

// Set writes the issuance cookie to the response.
func (m *Manager) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.Session(token))
}

// Delete writes the invalidation cookie to the response.
func (m *Manager) Delete(w http.ResponseWriter) {
	http.SetCookie(w, m.Expiry())
}
