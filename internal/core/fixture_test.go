package core_test

import (
	"context"
	"testing"

	"parts-desk/internal/core"
	"parts-desk/internal/store"
)

// recordingNotifier captures placed orders for assertions.
type recordingNotifier struct {
	placed []core.Order
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, order core.Order) {
	n.placed = append(n.placed, order)
}

// fixture wires the full service graph over a throwaway data directory.
type fixture struct {
	auth      core.AuthService
	inventory core.InventoryService
	orders    core.OrderService
	locations core.LocationService
	users     core.UserService
	settings  core.SettingsService
	notifier  *recordingNotifier
	store     *store.Store

	admin core.Identity
	staff core.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	users := store.NewUsers(st)
	session := store.NewSession(st)
	locations := store.NewLocations(st)
	inventories := store.NewInventories(st)
	orders := store.NewOrders(st)
	settings := store.NewSettings(st)
	notifier := &recordingNotifier{}

	f := &fixture{
		auth:      core.NewAuthService(users, session),
		inventory: core.NewInventoryService(inventories, locations),
		orders:    core.NewOrderService(orders, inventories, notifier),
		locations: core.NewLocationService(locations, inventories),
		users:     core.NewUserService(users),
		settings:  core.NewSettingsService(settings),
		notifier:  notifier,
		store:     st,
	}

	// Resolve the seeded identities once so tests can act as either role.
	seeded, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("List users: %v", err)
	}
	for _, u := range seeded {
		switch u.Role {
		case core.RoleAdmin:
			f.admin = u.Identity()
		case core.RoleStaff:
			f.staff = u.Identity()
		}
	}
	if f.admin.ID == "" || f.staff.ID == "" {
		t.Fatalf("seeded users missing: %+v", seeded)
	}
	return f
}

// addStockedPart creates a distribution part with the given numbers.
func (f *fixture) addStockedPart(t *testing.T, partNr string, qty, low int) core.Part {
	t.Helper()
	ctx := context.Background()
	part, err := f.inventory.AddPart(ctx, f.admin, core.DistributionLocation)
	if err != nil {
		t.Fatalf("AddPart: %v", err)
	}
	desc := partNr + " description"
	updated, err := f.inventory.UpdatePart(ctx, f.admin, core.DistributionLocation, part.ID, core.PartPatch{
		PartNumber:        &partNr,
		Description:       &desc,
		Quantity:          &qty,
		LowStockThreshold: &low,
	})
	if err != nil {
		t.Fatalf("UpdatePart: %v", err)
	}
	return *updated
}

// distributionPart reloads a distribution part by id.
func (f *fixture) distributionPart(t *testing.T, partID string) core.Part {
	t.Helper()
	parts, err := f.inventory.ListParts(context.Background(), core.DistributionLocation)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	for _, p := range parts {
		if p.ID == partID {
			return p
		}
	}
	t.Fatalf("part %s not found in distribution", partID)
	return core.Part{}
}
