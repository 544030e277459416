package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"backend/internal/models"
)

type gormSettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore returns the GORM-backed SettingsStore.
func NewSettingsStore(db *gorm.DB) SettingsStore {
	return &gormSettingsStore{db: db}
}

func (s *gormSettingsStore) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// EnsureSettings runs at startup; a missing row here means someone
		// deleted it out from under us. Recreate the defaults.
		settings = models.DefaultSettings()
		if createErr := s.db.WithContext(ctx).Create(&settings).Error; createErr != nil {
			return models.Settings{}, fmt.Errorf("recreate default settings: %w", createErr)
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *gormSettingsStore) Patch(ctx context.Context, fields map[string]interface{}) (models.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	candidate := current
	if v, ok := fields["order_form_enabled"].(bool); ok {
		candidate.OrderFormEnabled = v
	}
	if v, ok := fields["max_daily_orders"].(int); ok {
		candidate.MaxDailyOrders = v
	}
	if v, ok := fields["operating_hours_start"].(int); ok {
		candidate.OperatingHoursStart = v
	}
	if v, ok := fields["operating_hours_end"].(int); ok {
		candidate.OperatingHoursEnd = v
	}

	if err := candidate.Validate(); err != nil {
		return models.Settings{}, err
	}

	candidate.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&candidate).Error; err != nil {
		return models.Settings{}, fmt.Errorf("patch settings: %w", err)
	}
	return candidate, nil
}
