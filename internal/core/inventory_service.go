package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InventoryService manages the part collection of each location. Staff
// have read-only visibility; every mutation requires an admin actor and is
// checked here, not in the adapter.
type InventoryService interface {
	ListParts(ctx context.Context, location string) ([]Part, error)
	// SearchParts filters by case-insensitive substring over part number,
	// description and notes. An empty query returns everything.
	SearchParts(ctx context.Context, location, query string) ([]Part, error)

	// AddPart appends a blank record: zero quantity, zero threshold,
	// on-order false, empty text fields.
	AddPart(ctx context.Context, actor Identity, location string) (*Part, error)
	// UpdatePart merges non-nil patch fields into the matching record.
	// Fails with ErrNotFound when the id does not resolve.
	UpdatePart(ctx context.Context, actor Identity, location, partID string, patch PartPatch) (*Part, error)
	// SetOnOrder flips the supplier re-order marker. Admin only, even
	// though staff can see the flag.
	SetOnOrder(ctx context.Context, actor Identity, location, partID string, onOrder bool) (*Part, error)
	// DeletePart removes the record. Idempotent: deleting an absent id is
	// a no-op.
	DeletePart(ctx context.Context, actor Identity, location, partID string) error
}

type inventoryService struct {
	inventories InventoryRepository
	locations   LocationRepository
}

func NewInventoryService(inventories InventoryRepository, locations LocationRepository) InventoryService {
	return &inventoryService{inventories: inventories, locations: locations}
}

// resolveLocation verifies the name is in the registry and returns its
// stored (uppercase) form.
func (s *inventoryService) resolveLocation(ctx context.Context, location string) (string, error) {
	names, err := s.locations.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load locations: %w", err)
	}
	for _, name := range names {
		if strings.EqualFold(name, strings.TrimSpace(location)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("location %q: %w", location, ErrNotFound)
}

func (s *inventoryService) ListParts(ctx context.Context, location string) ([]Part, error) {
	name, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.inventories.Parts(ctx, name)
}

func (s *inventoryService) SearchParts(ctx context.Context, location, query string) ([]Part, error) {
	parts, err := s.ListParts(ctx, location)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return parts, nil
	}
	var matched []Part
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p.PartNumber), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Notes), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *inventoryService) AddPart(ctx context.Context, actor Identity, location string) (*Part, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("add part: %w", ErrPermissionDenied)
	}
	name, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	parts, err := s.inventories.Parts(ctx, name)
	if err != nil {
		return nil, err
	}

	part := Part{ID: uuid.NewString()}
	next := append(append([]Part(nil), parts...), part)
	if err := s.inventories.Replace(ctx, name, next); err != nil {
		return nil, fmt.Errorf("failed to save %s inventory: %w", name, err)
	}
	return &part, nil
}

func (s *inventoryService) UpdatePart(ctx context.Context, actor Identity, location, partID string, patch PartPatch) (*Part, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("update part: %w", ErrPermissionDenied)
	}
	return s.mutatePart(ctx, location, partID, func(p *Part) {
		if patch.PartNumber != nil {
			p.PartNumber = *patch.PartNumber
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		if patch.Quantity != nil {
			p.Quantity = max(0, *patch.Quantity)
		}
		if patch.LowStockThreshold != nil {
			p.LowStockThreshold = max(0, *patch.LowStockThreshold)
		}
		if patch.ImageRef != nil {
			p.ImageRef = *patch.ImageRef
		}
	})
}

func (s *inventoryService) SetOnOrder(ctx context.Context, actor Identity, location, partID string, onOrder bool) (*Part, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("toggle on-order: %w", ErrPermissionDenied)
	}
	return s.mutatePart(ctx, location, partID, func(p *Part) {
		p.OnOrder = onOrder
	})
}

func (s *inventoryService) DeletePart(ctx context.Context, actor Identity, location, partID string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("delete part: %w", ErrPermissionDenied)
	}
	name, err := s.resolveLocation(ctx, location)
	if err != nil {
		return err
	}
	parts, err := s.inventories.Parts(ctx, name)
	if err != nil {
		return err
	}

	next := make([]Part, 0, len(parts))
	for _, p := range parts {
		if p.ID != partID {
			next = append(next, p)
		}
	}
	if len(next) == len(parts) {
		return nil
	}
	if err := s.inventories.Replace(ctx, name, next); err != nil {
		return fmt.Errorf("failed to save %s inventory: %w", name, err)
	}
	return nil
}

// mutatePart applies fn to the matching record and replaces the collection.
func (s *inventoryService) mutatePart(ctx context.Context, location, partID string, fn func(*Part)) (*Part, error) {
	name, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	parts, err := s.inventories.Parts(ctx, name)
	if err != nil {
		return nil, err
	}

	next := append([]Part(nil), parts...)
	for i := range next {
		if next[i].ID == partID {
			fn(&next[i])
			if err := s.inventories.Replace(ctx, name, next); err != nil {
				return nil, fmt.Errorf("failed to save %s inventory: %w", name, err)
			}
			part := next[i]
			return &part, nil
		}
	}
	return nil, fmt.Errorf("part %q in %s: %w", partID, name, ErrNotFound)
}
