// Package store persists application state as named JSON documents under a
// data directory: one file per fixed key, replaced wholesale on every
// write. A missing key yields a documented default, which is materialized
// on first access so identifiers generated during seeding stay stable.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// The fixed keys of the persisted state layout.
const (
	keyUsers     = "partsdesk.users"
	keySession   = "partsdesk.session"
	keyLocations = "partsdesk.locations"
	keyDistInv   = "partsdesk.inventory.distribution"
	keyBranchInv = "partsdesk.inventory.branches"
	keyOrders    = "partsdesk.orders"
	keySettings  = "partsdesk.settings"
)

// Store is a process-local key→document store. All access is serialized
// behind one mutex; the model assumes a single interactive actor, and the
// lock only guards against accidental concurrent use, not multi-process
// coordination.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open ensures the data directory exists and returns a Store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read unmarshals the document under key into v. Returns false when the
// key is absent; callers substitute their default.
func (s *Store) read(ctx context.Context, key string, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// write replaces the document under key. The write goes to a temp file in
// the same directory and is renamed into place, so a crash never leaves a
// half-written document.
func (s *Store) write(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// readOrSeed reads key into v, materializing seed() under the key on a
// miss.
func (s *Store) readOrSeed(ctx context.Context, key string, v any, seed func() any) error {
	found, err := s.read(ctx, key, v)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	seeded := seed()
	if err := s.write(ctx, key, seeded); err != nil {
		return err
	}
	data, err := json.Marshal(seeded)
	if err != nil {
		return fmt.Errorf("failed to encode %s seed: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s seed: %w", key, err)
	}
	return nil
}

// Reset discards every persisted document, restoring the seeded defaults
// on next access.
func (s *Store) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := []string{keyUsers, keySession, keyLocations, keyDistInv, keyBranchInv, keyOrders, keySettings}
	for _, key := range keys {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
