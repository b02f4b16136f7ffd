package core_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"parts-desk/internal/core"
)

func TestSeededLocations(t *testing.T) {
	f := newFixture(t)

	names, err := f.locations.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"DISTRIBUTION", "RANDBURG", "MENLYN", "ZEERUST", "CAPE TOWN", "SOMERSET"}
	if !slices.Equal(names, want) {
		t.Errorf("locations = %v, want %v", names, want)
	}
}

func TestAddLocationNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name, err := f.locations.Add(ctx, f.admin, "  port elizabeth ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if name != "PORT ELIZABETH" {
		t.Errorf("stored name = %q, want PORT ELIZABETH", name)
	}

	// The new branch starts with an empty, usable inventory.
	parts, err := f.inventory.ListParts(ctx, "PORT ELIZABETH")
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("new branch inventory = %+v, want empty", parts)
	}
}

func TestAddLocationDuplicateAfterNormalization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.locations.Add(ctx, f.admin, "north"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := f.locations.Add(ctx, f.admin, " North ")
	if !errors.Is(err, core.ErrDuplicateLocation) {
		t.Fatalf("err = %v, want ErrDuplicateLocation", err)
	}
	// Seeded names collide too.
	_, err = f.locations.Add(ctx, f.admin, "randburg")
	if !errors.Is(err, core.ErrDuplicateLocation) {
		t.Fatalf("err = %v, want ErrDuplicateLocation", err)
	}
}

func TestRemoveLocationDiscardsInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.inventory.AddPart(ctx, f.admin, "MENLYN"); err != nil {
		t.Fatalf("AddPart: %v", err)
	}

	if err := f.locations.Remove(ctx, f.admin, "menlyn", true); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	names, err := f.locations.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if slices.Contains(names, "MENLYN") {
		t.Errorf("MENLYN still registered: %v", names)
	}
	if _, err := f.inventory.ListParts(ctx, "MENLYN"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("removed branch still resolvable: err = %v", err)
	}

	// Re-adding starts fresh, the old parts are gone.
	if _, err := f.locations.Add(ctx, f.admin, "MENLYN"); err != nil {
		t.Fatalf("re-Add: %v", err)
	}
	parts, err := f.inventory.ListParts(ctx, "MENLYN")
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("re-added branch inventory = %+v, want empty", parts)
	}
}

func TestRemoveLocationGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.locations.Remove(ctx, f.admin, "distribution", true); !errors.Is(err, core.ErrProtectedLocation) {
		t.Errorf("remove hub: err = %v, want ErrProtectedLocation", err)
	}
	if err := f.locations.Remove(ctx, f.admin, "RANDBURG", false); !errors.Is(err, core.ErrRemovalNotConfirmed) {
		t.Errorf("unconfirmed: err = %v, want ErrRemovalNotConfirmed", err)
	}
	if err := f.locations.Remove(ctx, f.admin, "NOWHERE", true); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown: err = %v, want ErrNotFound", err)
	}
}

func TestLocationAdminIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.locations.Add(ctx, f.staff, "EAST"); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff add: err = %v, want ErrPermissionDenied", err)
	}
	if err := f.locations.Remove(ctx, f.staff, "RANDBURG", true); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff remove: err = %v, want ErrPermissionDenied", err)
	}
}
