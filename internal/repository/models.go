// Package repository provides pgx-backed persistence for users, sessions,
// and posts. Uniqueness guarantees (usernames, session tokens, CSRF tokens)
// are enforced by database constraints, which keeps concurrent request
// handling safe without in-process locking.
package repository

import "time"

// User is an account record. Users are created by signup and never mutated
// or deleted afterwards.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Post is a content record owned by a user.
type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
