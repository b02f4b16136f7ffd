package core_test

import (
	"context"
	"errors"
	"testing"

	"parts-desk/internal/core"
)

func TestSettingsUpdateAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.settings.Update(ctx, f.admin, core.Settings{LogoURL: "https://example.com/logo.png", AllowPush: false})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AllowPush {
		t.Error("allowPush not cleared")
	}

	got, err := f.settings.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != updated {
		t.Errorf("Get = %+v, want %+v", got, updated)
	}

	reset, err := f.settings.Reset(ctx, f.admin)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset != core.DefaultSettings() {
		t.Errorf("Reset = %+v, want defaults", reset)
	}
}

func TestSettingsWritesAreAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.settings.Update(ctx, f.staff, core.Settings{}); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff update: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := f.settings.Reset(ctx, f.staff); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff reset: err = %v, want ErrPermissionDenied", err)
	}
	// Reads are open to any role.
	if _, err := f.settings.Get(ctx); err != nil {
		t.Errorf("staff get: %v", err)
	}
}
