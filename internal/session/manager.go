package session

import (
	"context"
	"errors"
	"time"
)

// maxCreateAttempts bounds token regeneration on storage uniqueness
// collisions. A collision of two 256-bit tokens is astronomically rare, so
// hitting the bound indicates a broken store rather than bad luck.
const maxCreateAttempts = 3

// Manager handles session lifecycle: creation, lookup, and expired-row
// cleanup. Expired sessions are indistinguishable from absent ones at this
// interface; only storage I/O failures surface as distinct errors.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager creates a session manager with the specified store and
// time-to-live duration.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
	}
}

// Create generates a new session for the user and persists it. Token
// collisions at the storage layer trigger regeneration.
func (m *Manager) Create(ctx context.Context, userID int64) (Session, error) {
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		sess, err := New(userID, m.ttl)
		if err != nil {
			return Session{}, err
		}

		err = m.store.Create(ctx, &sess)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrDuplicateToken) {
			return Session{}, errors.Join(ErrCreateSession, err)
		}
		lastErr = err
	}
	return Session{}, errors.Join(ErrCreateSession, lastErr)
}

// GetByToken retrieves a live session by token. Expired rows are reported as
// ErrNotFound without being deleted; cleanup is deferred to CleanupExpired.
func (m *Manager) GetByToken(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrNotFound
	}

	return *sess, nil
}

// CleanupExpired removes all expired sessions from the store. Should be
// called periodically to prevent session table growth.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
