package services

import (
	"context"
	"fmt"

	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// SettingsService reads and writes user settings.
type SettingsService struct {
	store ports.SettingsStore
}

func NewSettingsService(store ports.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (core.Settings, error) {
	return s.store.GetSettings(ctx)
}

// Update validates and stores settings.
func (s *SettingsService) Update(ctx context.Context, settings core.Settings) (core.Settings, error) {
	if err := settings.Validate(); err != nil {
		return core.Settings{}, err
	}
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		return core.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}
