package core

import "context"

// Repository interfaces for the persisted collections. Mutation discipline
// is copy-on-write at collection level: read the whole collection, build
// the changed value, replace it. The file-backed implementations live in
// internal/store; services depend only on these interfaces.

// UserRepository holds the account list.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Replace(ctx context.Context, users []User) error
}

// SessionRepository holds at most one logged-in identity. Current returns
// nil when nobody is logged in. There is no expiry; the session persists
// until an explicit Clear.
type SessionRepository interface {
	Current(ctx context.Context) (*Identity, error)
	Set(ctx context.Context, identity Identity) error
	Clear(ctx context.Context) error
}

// LocationRepository is the ordered registry of location names,
// DistributionLocation included.
type LocationRepository interface {
	List(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, names []string) error
}

// InventoryRepository holds one independent part collection per location,
// keyed by location name.
type InventoryRepository interface {
	Parts(ctx context.Context, location string) ([]Part, error)
	Replace(ctx context.Context, location string, parts []Part) error
	// Init creates an empty collection for a new branch.
	Init(ctx context.Context, location string) error
	// Drop permanently discards a branch's collection.
	Drop(ctx context.Context, location string) error
}

// OrderRepository holds the order ledger, most recent first.
type OrderRepository interface {
	List(ctx context.Context) ([]Order, error)
	Replace(ctx context.Context, orders []Order) error
}

// SettingsRepository holds the singleton settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Put(ctx context.Context, settings Settings) error
}

// Notifier delivers a best-effort local notification. Implementations must
// never return an error or panic into the caller; a failed notification
// must never fail the order.
type Notifier interface {
	OrderPlaced(ctx context.Context, order Order)
}
