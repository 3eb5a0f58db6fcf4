package repository

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/scrawl/internal/postgres"
	"github.com/dmitrymomot/scrawl/internal/session"
)

// SessionRepository persists sessions. It implements session.Store.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a session repository over the given connection.
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session row. Token and CSRF token collisions surface as
// session.ErrDuplicateToken so the manager can regenerate.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	query := `INSERT INTO sessions (id, csrf, user_id, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		sess.Token, sess.CSRFToken, sess.UserID, sess.ExpiresAt, sess.CreatedAt)
	if err != nil {
		if postgres.IsDuplicateKeyError(err) {
			return session.ErrDuplicateToken
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetByToken returns the session row for the token, expired or not; expiry
// policy belongs to the manager.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	query := `SELECT id, csrf, user_id, expires_at, created_at FROM sessions WHERE id = $1`

	sess := &session.Session{}
	err := r.db.QueryRow(ctx, query, token).
		Scan(&sess.Token, &sess.CSRFToken, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if postgres.IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return sess, nil
}

// DeleteExpired removes expired session rows and returns the deleted count.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
