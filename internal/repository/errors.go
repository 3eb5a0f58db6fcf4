package repository

import "errors"

var (
	// ErrUserNotFound is returned when no user row matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the username uniqueness constraint
	// rejects an insert.
	ErrUsernameTaken = errors.New("username already taken")
)
