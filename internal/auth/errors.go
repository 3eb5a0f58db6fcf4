package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when signup hits an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmptyUsername is returned when signup is attempted without a username.
	ErrEmptyUsername = errors.New("username is required")
)
