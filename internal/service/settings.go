package service

import (
	"context"
	"fmt"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// SettingsService manages the per-user settings singleton.
type SettingsService struct {
	store db.Store
}

func NewSettingsService(store db.Store) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the user's settings, creating the defaults row on first
// read.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	if settings == nil {
		settings = models.DefaultSettings(userID)
		if err := s.store.CreateSettings(ctx, settings); err != nil {
			return nil, fmt.Errorf("error creating settings: %w", err)
		}
	}
	return settings, nil
}

// UpdateSettingsParams carries a partial update; nil fields keep their
// prior value.
type UpdateSettingsParams struct {
	WakeWarningTime     *string
	ElapsedRemindMin    *int
	ElapsedRemindRepeat *bool
	SilentHoursStart    *string
	SilentHoursEnd      *string
	IdleThresholdDays   *int
}

func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, params UpdateSettingsParams) (*models.Settings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.WakeWarningTime != nil {
		settings.WakeWarningTime = *params.WakeWarningTime
	}
	if params.ElapsedRemindMin != nil {
		settings.ElapsedRemindMin = *params.ElapsedRemindMin
	}
	if params.ElapsedRemindRepeat != nil {
		settings.ElapsedRemindRepeat = *params.ElapsedRemindRepeat
	}
	if params.SilentHoursStart != nil {
		settings.SilentHoursStart = params.SilentHoursStart
	}
	if params.SilentHoursEnd != nil {
		settings.SilentHoursEnd = params.SilentHoursEnd
	}
	if params.IdleThresholdDays != nil {
		settings.IdleThresholdDays = *params.IdleThresholdDays
	}

	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}
	return settings, nil
}
