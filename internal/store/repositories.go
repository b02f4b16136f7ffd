package store

import (
	"context"
	"fmt"

	"parts-desk/internal/core"

	"github.com/google/uuid"
)

// Seeded account digests (SHA-256 of the initial passwords). Seeding with
// precomputed digests keeps Open synchronous and free of secret material.
const (
	adminSeedDigest = "3eb3fe66b31e3b4d10fa70b5cad49c7112294af6ae4e476a1c405155d45aa121"
	staffSeedDigest = "05dd4a1376a72d9a5e0fad32000f7e61651a5cef5c9c9a0c3816c7443dafbf6f"
)

// DefaultLocations is the seeded registry; DISTRIBUTION is the hub, the
// rest are branches.
var DefaultLocations = []string{
	core.DistributionLocation,
	"RANDBURG",
	"MENLYN",
	"ZEERUST",
	"CAPE TOWN",
	"SOMERSET",
}

func seedUsers() []core.User {
	return []core.User{
		{ID: uuid.NewString(), Name: "Administrator", Email: "admin@vagspec", Role: core.RoleAdmin, PasswordDigest: adminSeedDigest, Active: true},
		{ID: uuid.NewString(), Name: "Staff Member", Email: "staff@vagspec", Role: core.RoleStaff, PasswordDigest: staffSeedDigest, Active: true},
	}
}

// ── Users ────────────────────────────────────────────────────────────────────

type Users struct{ s *Store }

func NewUsers(s *Store) *Users { return &Users{s: s} }

func (r *Users) List(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := r.s.readOrSeed(ctx, keyUsers, &users, func() any { return seedUsers() }); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Users) Replace(ctx context.Context, users []core.User) error {
	return r.s.write(ctx, keyUsers, users)
}

// ── Session ──────────────────────────────────────────────────────────────────

type Session struct{ s *Store }

func NewSession(s *Store) *Session { return &Session{s: s} }

func (r *Session) Current(ctx context.Context) (*core.Identity, error) {
	var identity *core.Identity
	found, err := r.s.read(ctx, keySession, &identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return identity, nil
}

func (r *Session) Set(ctx context.Context, identity core.Identity) error {
	return r.s.write(ctx, keySession, &identity)
}

func (r *Session) Clear(ctx context.Context) error {
	return r.s.write(ctx, keySession, nil)
}

// ── Locations ────────────────────────────────────────────────────────────────

type Locations struct{ s *Store }

func NewLocations(s *Store) *Locations { return &Locations{s: s} }

func (r *Locations) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.s.readOrSeed(ctx, keyLocations, &names, func() any {
		return append([]string(nil), DefaultLocations...)
	}); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Locations) Replace(ctx context.Context, names []string) error {
	return r.s.write(ctx, keyLocations, names)
}

// ── Inventories ──────────────────────────────────────────────────────────────

// Inventories keeps the distribution collection under its own key and the
// branch collections in one name→parts document, mirroring the persisted
// state layout.
type Inventories struct{ s *Store }

func NewInventories(s *Store) *Inventories { return &Inventories{s: s} }

func (r *Inventories) branches(ctx context.Context) (map[string][]core.Part, error) {
	var m map[string][]core.Part
	if err := r.s.readOrSeed(ctx, keyBranchInv, &m, func() any {
		seeded := make(map[string][]core.Part, len(DefaultLocations)-1)
		for _, name := range DefaultLocations {
			if name != core.DistributionLocation {
				seeded[name] = []core.Part{}
			}
		}
		return seeded
	}); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string][]core.Part{}
	}
	return m, nil
}

func (r *Inventories) Parts(ctx context.Context, location string) ([]core.Part, error) {
	if location == core.DistributionLocation {
		var parts []core.Part
		if err := r.s.readOrSeed(ctx, keyDistInv, &parts, func() any { return []core.Part{} }); err != nil {
			return nil, err
		}
		return parts, nil
	}
	m, err := r.branches(ctx)
	if err != nil {
		return nil, err
	}
	return m[location], nil
}

func (r *Inventories) Replace(ctx context.Context, location string, parts []core.Part) error {
	if parts == nil {
		parts = []core.Part{}
	}
	if location == core.DistributionLocation {
		return r.s.write(ctx, keyDistInv, parts)
	}
	m, err := r.branches(ctx)
	if err != nil {
		return err
	}
	m[location] = parts
	return r.s.write(ctx, keyBranchInv, m)
}

func (r *Inventories) Init(ctx context.Context, location string) error {
	if location == core.DistributionLocation {
		return fmt.Errorf("cannot re-initialize %s", core.DistributionLocation)
	}
	m, err := r.branches(ctx)
	if err != nil {
		return err
	}
	if _, ok := m[location]; ok {
		return nil
	}
	m[location] = []core.Part{}
	return r.s.write(ctx, keyBranchInv, m)
}

func (r *Inventories) Drop(ctx context.Context, location string) error {
	if location == core.DistributionLocation {
		return fmt.Errorf("cannot drop %s", core.DistributionLocation)
	}
	m, err := r.branches(ctx)
	if err != nil {
		return err
	}
	if _, ok := m[location]; !ok {
		return nil
	}
	delete(m, location)
	return r.s.write(ctx, keyBranchInv, m)
}

// ── Orders ───────────────────────────────────────────────────────────────────

type Orders struct{ s *Store }

func NewOrders(s *Store) *Orders { return &Orders{s: s} }

func (r *Orders) List(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := r.s.readOrSeed(ctx, keyOrders, &orders, func() any { return []core.Order{} }); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Orders) Replace(ctx context.Context, orders []core.Order) error {
	if orders == nil {
		orders = []core.Order{}
	}
	return r.s.write(ctx, keyOrders, orders)
}

// ── Settings ─────────────────────────────────────────────────────────────────

type SettingsRepo struct{ s *Store }

func NewSettings(s *Store) *SettingsRepo { return &SettingsRepo{s: s} }

func (r *SettingsRepo) Get(ctx context.Context) (core.Settings, error) {
	var settings core.Settings
	if err := r.s.readOrSeed(ctx, keySettings, &settings, func() any { return core.DefaultSettings() }); err != nil {
		return core.Settings{}, err
	}
	return settings, nil
}

func (r *SettingsRepo) Put(ctx context.Context, settings core.Settings) error {
	return r.s.write(ctx, keySettings, settings)
}
