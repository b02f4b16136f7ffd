package core

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserService is the admin surface for account management. Accounts are
// never hard-deleted, only deactivated. Temporary secrets are returned in
// plaintext exactly once and are never stored or logged; only the digest
// is persisted.
type UserService interface {
	List(ctx context.Context, actor Identity) ([]User, error)

	// Create validates the form, generates a temporary secret and stores
	// the new active user. Returns the user and the plaintext secret.
	// Fails with ErrMissingName, ErrMissingEmail, ErrInvalidEmail or
	// ErrEmailTaken (case-insensitive, across active and inactive users).
	Create(ctx context.Context, actor Identity, name, email string, role Role) (*User, string, error)

	// ResetPassword replaces the digest with that of a fresh temporary
	// secret and returns the plaintext once. Role and active flag are
	// untouched.
	ResetPassword(ctx context.Context, actor Identity, userID string) (string, error)

	// ToggleActive flips the active flag. A live session of a deactivated
	// user stays valid until the next login attempt.
	ToggleActive(ctx context.Context, actor Identity, userID string) (*User, error)
}

type userService struct {
	users    UserRepository
	validate *validator.Validate
}

func NewUserService(users UserRepository) UserService {
	return &userService{users: users, validate: validator.New()}
}

func (s *userService) List(ctx context.Context, actor Identity) ([]User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("list users: %w", ErrPermissionDenied)
	}
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, actor Identity, name, email string, role Role) (*User, string, error) {
	if !actor.IsAdmin() {
		return nil, "", fmt.Errorf("create user: %w", ErrPermissionDenied)
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, "", ErrMissingName
	}
	if email == "" {
		return nil, "", ErrMissingEmail
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, "", fmt.Errorf("%q: %w", email, ErrInvalidEmail)
	}
	if role != RoleAdmin {
		role = RoleStaff
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, "", fmt.Errorf("%q: %w", email, ErrEmailTaken)
		}
	}

	secret, err := newTempSecret()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	user := User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Role:           role,
		PasswordDigest: HashSecret(secret),
		Active:         true,
	}

	next := append(append([]User(nil), users...), user)
	if err := s.users.Replace(ctx, next); err != nil {
		return nil, "", fmt.Errorf("failed to save users: %w", err)
	}
	return &user, secret, nil
}

func (s *userService) ResetPassword(ctx context.Context, actor Identity, userID string) (string, error) {
	if !actor.IsAdmin() {
		return "", fmt.Errorf("reset password: %w", ErrPermissionDenied)
	}

	secret, err := newTempSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	digest := HashSecret(secret)
	if _, err := s.mutateUser(ctx, userID, func(u *User) {
		u.PasswordDigest = digest
	}); err != nil {
		return "", err
	}
	return secret, nil
}

func (s *userService) ToggleActive(ctx context.Context, actor Identity, userID string) (*User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("toggle active: %w", ErrPermissionDenied)
	}
	return s.mutateUser(ctx, userID, func(u *User) {
		u.Active = !u.Active
	})
}

func (s *userService) mutateUser(ctx context.Context, userID string, fn func(*User)) (*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	next := append([]User(nil), users...)
	for i := range next {
		if next[i].ID == userID {
			fn(&next[i])
			if err := s.users.Replace(ctx, next); err != nil {
				return nil, fmt.Errorf("failed to save users: %w", err)
			}
			user := next[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
}

const secretAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newTempSecret draws 8 base-36 characters from crypto/rand, the shape
// users already know from emailed temporary passwords.
func newTempSecret() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = secretAlphabet[int(b)%len(secretAlphabet)]
	}
	return string(out), nil
}
