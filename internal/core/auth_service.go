package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AuthService verifies credentials against the account list and keeps the
// single persisted session.
type AuthService interface {
	// Login looks a user up by case-insensitive email, verifies the secret
	// digest and on success stores and returns the reduced identity.
	// Fails with ErrNotFound, ErrUserDeactivated or ErrWrongSecret.
	Login(ctx context.Context, email, secret string) (*Identity, error)

	// Logout clears the session. A no-op when nobody is logged in.
	Logout(ctx context.Context) error

	// CurrentIdentity returns the logged-in identity, or nil.
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

type authService struct {
	users   UserRepository
	session SessionRepository
}

func NewAuthService(users UserRepository, session SessionRepository) AuthService {
	return &authService{users: users, session: session}
}

// HashSecret returns the hex SHA-256 digest of a secret. The digest
// format is fixed by the seeded accounts, so it cannot change without a
// migration.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Login(ctx context.Context, email, secret string) (*Identity, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	email = strings.TrimSpace(email)
	var match *User
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			match = &users[i]
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if !match.Active {
		return nil, fmt.Errorf("user %q: %w", email, ErrUserDeactivated)
	}
	if HashSecret(secret) != match.PasswordDigest {
		return nil, ErrWrongSecret
	}

	identity := match.Identity()
	if err := s.session.Set(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &identity, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

func (s *authService) CurrentIdentity(ctx context.Context) (*Identity, error) {
	return s.session.Current(ctx)
}
