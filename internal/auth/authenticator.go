// Package auth resolves inbound requests to authenticated principals and
// verifies credentials against stored accounts.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/scrawl/internal/repository"
	"github.com/dmitrymomot/scrawl/internal/session"
)

// UserStore is the narrow account-lookup contract the package needs from
// persistence.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*repository.User, error)
	GetByUsername(ctx context.Context, username string) (*repository.User, error)
	Create(ctx context.Context, username string, passwordHash []byte) (*repository.User, error)
}

// Result is the outcome of authenticating a request. The zero value means
// unauthenticated; both fields are set when authentication succeeds.
type Result struct {
	User    *repository.User
	Session *session.Session
}

// Authenticated reports whether the request resolved to a live session and
// its user.
func (r Result) Authenticated() bool {
	return r.User != nil && r.Session != nil
}

// Authenticator resolves a raw Cookie header to a Result.
type Authenticator struct {
	sessions  *session.Manager
	users     UserStore
	cookieKey string
}

// NewAuthenticator creates an authenticator that looks for the session token
// under cookieKey.
func NewAuthenticator(sessions *session.Manager, users UserStore, cookieKey string) *Authenticator {
	return &Authenticator{
		sessions:  sessions,
		users:     users,
		cookieKey: cookieKey,
	}
}

// Authenticate resolves the raw Cookie header to either an authenticated
// principal or the zero Result. A missing, malformed, or dead session cookie
// is not an error; the error return is reserved for storage I/O failures,
// which must never be mistaken for "no session".
func (a *Authenticator) Authenticate(ctx context.Context, rawCookie string) (Result, error) {
	token, ok := SessionTokenFromCookie(rawCookie, a.cookieKey)
	if !ok {
		return Result{}, nil
	}

	sess, err := a.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return Result{}, nil
		}
		return Result{}, err
	}

	user, err := a.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Result{}, nil
		}
		return Result{}, err
	}

	return Result{User: user, Session: &sess}, nil
}

// SessionTokenFromCookie extracts the candidate session token from a raw
// Cookie header value.
//
// The header is treated as a semicolon-delimited list of key=value pairs.
// Each pair is split at its FIRST '=' only: for "id=a=b" the candidate token
// is "a=b". Absence of the key, or an empty value, yields ok=false - never
// an error.
func SessionTokenFromCookie(raw, key string) (string, bool) {
	for _, pair := range strings.Split(raw, ";") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || k != key {
			continue
		}
		if v == "" {
			return "", false
		}
		return v, true
	}
	return "", false
}
