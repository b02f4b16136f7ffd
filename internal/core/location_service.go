package core

import (
	"context"
	"fmt"
	"strings"
)

// LocationService administers the branch registry. Names are stored
// uppercase; DistributionLocation is a permanent member.
type LocationService interface {
	List(ctx context.Context) ([]string, error)

	// Add trims and uppercases the name, rejects duplicates
	// (post-normalization, so the check is effectively case-insensitive),
	// appends it to the registry and initializes an empty inventory for
	// it. Admin only. Returns the stored form.
	Add(ctx context.Context, actor Identity, name string) (string, error)

	// Remove deletes a branch and permanently discards its inventory.
	// confirmed models the caller's explicit yes/no step; removal is
	// rejected without it. The distribution location is protected
	// unconditionally. Admin only.
	Remove(ctx context.Context, actor Identity, name string, confirmed bool) error
}

type locationService struct {
	locations   LocationRepository
	inventories InventoryRepository
}

func NewLocationService(locations LocationRepository, inventories InventoryRepository) LocationService {
	return &locationService{locations: locations, inventories: inventories}
}

func (s *locationService) List(ctx context.Context) ([]string, error) {
	return s.locations.List(ctx)
}

func (s *locationService) Add(ctx context.Context, actor Identity, name string) (string, error) {
	if !actor.IsAdmin() {
		return "", fmt.Errorf("add location: %w", ErrPermissionDenied)
	}
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return "", fmt.Errorf("location name is blank: %w", ErrNotFound)
	}

	names, err := s.locations.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load locations: %w", err)
	}
	for _, existing := range names {
		if existing == normalized {
			return "", fmt.Errorf("location %q: %w", normalized, ErrDuplicateLocation)
		}
	}

	next := append(append([]string(nil), names...), normalized)
	if err := s.locations.Replace(ctx, next); err != nil {
		return "", fmt.Errorf("failed to save locations: %w", err)
	}
	if err := s.inventories.Init(ctx, normalized); err != nil {
		return "", fmt.Errorf("failed to initialize %s inventory: %w", normalized, err)
	}
	return normalized, nil
}

func (s *locationService) Remove(ctx context.Context, actor Identity, name string, confirmed bool) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("remove location: %w", ErrPermissionDenied)
	}
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == DistributionLocation {
		return fmt.Errorf("%s: %w", DistributionLocation, ErrProtectedLocation)
	}
	if !confirmed {
		return fmt.Errorf("remove location %s: %w", normalized, ErrRemovalNotConfirmed)
	}

	names, err := s.locations.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load locations: %w", err)
	}
	next := make([]string, 0, len(names))
	found := false
	for _, existing := range names {
		if existing == normalized {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		return fmt.Errorf("location %q: %w", normalized, ErrNotFound)
	}

	if err := s.locations.Replace(ctx, next); err != nil {
		return fmt.Errorf("failed to save locations: %w", err)
	}
	if err := s.inventories.Drop(ctx, normalized); err != nil {
		return fmt.Errorf("failed to discard %s inventory: %w", normalized, err)
	}
	return nil
}
