package session

import "context"

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely; token and CSRF token
// uniqueness is enforced by storage-level constraints, not in-process locks.
type Store interface {
	// Create persists a new session row. Returns ErrDuplicateToken when the
	// token or CSRF token collides with an existing row.
	Create(ctx context.Context, sess *Session) error

	// GetByToken returns the session row for the token, expired or not.
	// Returns ErrNotFound when no row matches.
	GetByToken(ctx context.Context, token string) (*Session, error)

	// DeleteExpired removes all expired sessions and returns the count of
	// deleted rows.
	DeleteExpired(ctx context.Context) (int64, error)
}
