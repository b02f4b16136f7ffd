package core

import (
	"context"
	"fmt"
)

// SettingsService manages the singleton app settings record.
type SettingsService interface {
	Get(ctx context.Context) (Settings, error)
	// Update replaces the record. Admin only.
	Update(ctx context.Context, actor Identity, settings Settings) (Settings, error)
	// Reset restores the fixed defaults. Admin only.
	Reset(ctx context.Context, actor Identity) (Settings, error)
}

type settingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, actor Identity, settings Settings) (Settings, error) {
	if !actor.IsAdmin() {
		return Settings{}, fmt.Errorf("update settings: %w", ErrPermissionDenied)
	}
	if err := s.settings.Put(ctx, settings); err != nil {
		return Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Reset(ctx context.Context, actor Identity) (Settings, error) {
	return s.Update(ctx, actor, DefaultSettings())
}
