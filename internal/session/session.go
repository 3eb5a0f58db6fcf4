// Package session owns the server-side session lifecycle: opaque bearer
// tokens, the CSRF token bound to each session, and expiry handling.
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"time"
)

// Session binds an opaque bearer token to a user, with expiry and a bound
// CSRF token. The token is the value carried in the session cookie; the CSRF
// token is a second secret required on state-mutating requests.
type Session struct {
	// Token is the cryptographically secure session identifier
	// (32 bytes, base64url). Used as the cookie value.
	Token string

	// CSRFToken is issued at session creation and never rotated within the
	// session's lifetime. Unique across all sessions.
	CSRFToken string

	UserID int64

	ExpiresAt time.Time
	CreatedAt time.Time
}

// New creates a session for the given user with freshly generated token and
// CSRF token.
func New(userID int64, ttl time.Duration) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	csrf, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		Token:     token,
		CSRFToken: csrf,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// IsExpired returns true if the session has expired. A session is live
// strictly before its expiry; at or after it, it behaves as if it never
// existed.
func (s Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// VerifyCSRF reports whether the caller-supplied token exactly equals the
// session's CSRF token. The comparison is constant-time.
func (s Session) VerifyCSRF(token string) bool {
	if token == "" || s.CSRFToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.CSRFToken), []byte(token)) == 1
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
