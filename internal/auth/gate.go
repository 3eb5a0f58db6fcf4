package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/scrawl/internal/repository"
)

// dummyHash is compared against when the username does not exist, so the
// missing-user path costs a bcrypt verification just like the wrong-password
// path. Without it, response timing would reveal which usernames are taken.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("scrawl.invalid"), bcrypt.DefaultCost)

// CredentialGate verifies username/password pairs and creates new accounts.
type CredentialGate struct {
	users UserStore
}

// NewCredentialGate creates a credential gate backed by the given store.
func NewCredentialGate(users UserStore) *CredentialGate {
	return &CredentialGate{users: users}
}

// VerifyCredentials returns the user id when the password matches the stored
// secret. An unknown username and a wrong password both return
// ErrInvalidCredentials; callers must not be able to tell them apart through
// the error, the response, or timing.
func (g *CredentialGate) VerifyCredentials(ctx context.Context, username, password string) (int64, error) {
	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}

// CreateUser hashes the password and stores a new account. Username
// uniqueness is enforced by the storage layer and surfaces as
// ErrUsernameTaken. Password policy (length, confirmation) is the signup
// flow's responsibility, not the gate's.
func (g *CredentialGate) CreateUser(ctx context.Context, username, password string) (*repository.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := g.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}
