package app

import (
	"context"
	"errors"

	"parts-desk/internal/core"
)

// ErrNotLoggedIn is returned by operations that need an acting identity
// when the session is empty.
var ErrNotLoggedIn = errors.New("not logged in")

// ApplicationService is the single interface all UI adapters (REPL, CLI)
// call. It resolves the acting identity from the persisted session and
// passes it to the domain layer, which enforces roles itself.
// Implementations must contain no display logic.
type ApplicationService interface {
	// Session.
	Login(ctx context.Context, email, secret string) (*core.Identity, error)
	Logout(ctx context.Context) error
	CurrentIdentity(ctx context.Context) (*core.Identity, error)

	// Locations.
	ListLocations(ctx context.Context) ([]string, error)
	AddLocation(ctx context.Context, name string) (string, error)
	RemoveLocation(ctx context.Context, name string, confirmed bool) error

	// Inventory. query filters; empty returns everything.
	ListParts(ctx context.Context, location, query string) (*PartListResult, error)
	AddPart(ctx context.Context, location string) (*core.Part, error)
	UpdatePart(ctx context.Context, location, partID string, patch core.PartPatch) (*core.Part, error)
	SetOnOrder(ctx context.Context, location, partID string, onOrder bool) (*core.Part, error)
	DeletePart(ctx context.Context, location, partID string) error

	// Orders.
	ListOrders(ctx context.Context, query string) (*OrderListResult, error)
	PlaceOrder(ctx context.Context, partID string, quantity int) (*core.Order, error)
	EditOrderQuantity(ctx context.Context, orderID string, quantity int) (*core.Order, error)
	ApproveOrder(ctx context.Context, orderID string) (*core.Order, error)
	DeclineOrder(ctx context.Context, orderID string) (*core.Order, error)

	// User administration.
	ListUsers(ctx context.Context) ([]UserView, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error)
	ResetPassword(ctx context.Context, userID string) (string, error)
	ToggleUserActive(ctx context.Context, userID string) (*UserView, error)

	// Settings.
	GetSettings(ctx context.Context) (core.Settings, error)
	UpdateSettings(ctx context.Context, settings core.Settings) (core.Settings, error)
	ResetSettings(ctx context.Context) (core.Settings, error)

	// Export renders an inventory or the order ledger. format is "csv" or
	// "xlsx"; a failed xlsx export falls back to csv with FellBack set.
	ExportInventory(ctx context.Context, location, format string) (*ExportResult, error)
	ExportOrders(ctx context.Context, format string) (*ExportResult, error)

	// ResetData discards all persisted state, restoring seeded defaults.
	// Admin only.
	ResetData(ctx context.Context) error
}
