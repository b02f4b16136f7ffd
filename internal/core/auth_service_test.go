package core_test

import (
	"context"
	"errors"
	"testing"

	"parts-desk/internal/core"
)

func TestLoginSeededAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity, err := f.auth.Login(ctx, "admin@vagspec", "Admin123!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Role != core.RoleAdmin {
		t.Errorf("role = %s, want %s", identity.Role, core.RoleAdmin)
	}
	if identity.Email != "admin@vagspec" {
		t.Errorf("email = %s, want admin@vagspec", identity.Email)
	}

	current, err := f.auth.CurrentIdentity(ctx)
	if err != nil {
		t.Fatalf("CurrentIdentity: %v", err)
	}
	if current == nil || current.ID != identity.ID {
		t.Errorf("session identity = %+v, want %+v", current, identity)
	}
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	if _, err := f.auth.Login(context.Background(), "  ADMIN@Vagspec ", "Admin123!"); err != nil {
		t.Fatalf("Login with cased email: %v", err)
	}
}

func TestLoginWrongSecret(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), "staff@vagspec", "wrong")
	if !errors.Is(err, core.ErrWrongSecret) {
		t.Fatalf("err = %v, want ErrWrongSecret", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), "nobody@vagspec", "Admin123!")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginDeactivatedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.users.ToggleActive(ctx, f.admin, f.staff.ID); err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	_, err := f.auth.Login(ctx, "staff@vagspec", "Staff123!")
	if !errors.Is(err, core.ErrUserDeactivated) {
		t.Fatalf("err = %v, want ErrUserDeactivated", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Login(ctx, "staff@vagspec", "Staff123!"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.auth.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	current, err := f.auth.CurrentIdentity(ctx)
	if err != nil {
		t.Fatalf("CurrentIdentity: %v", err)
	}
	if current != nil {
		t.Errorf("session after logout = %+v, want nil", current)
	}

	// Logging out twice is a no-op.
	if err := f.auth.Logout(ctx); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestHashSecretMatchesSeededDigest(t *testing.T) {
	const want = "3eb3fe66b31e3b4d10fa70b5cad49c7112294af6ae4e476a1c405155d45aa121"
	if got := core.HashSecret("Admin123!"); got != want {
		t.Errorf("HashSecret(\"Admin123!\") = %s, want %s", got, want)
	}
}
