package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store
	// or has already expired.
	ErrNotFound = errors.New("session not found")
	// ErrDuplicateToken is returned by stores when a generated token or CSRF
	// token collides with an existing row.
	ErrDuplicateToken = errors.New("duplicate session token")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrCreateSession is returned when persisting a new session fails.
	ErrCreateSession = errors.New("failed to create session")
)
