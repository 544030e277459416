package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"backend/internal/models"
)

type gormStaffStore struct {
	db *gorm.DB
}

// NewStaffStore returns the GORM-backed StaffStore.
func NewStaffStore(db *gorm.DB) StaffStore {
	return &gormStaffStore{db: db}
}

func (s *gormStaffStore) FindByEmail(ctx context.Context, email string) (models.Staff, error) {
	var staff models.Staff
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Staff{}, ErrStaffNotFound
	}
	if err != nil {
		return models.Staff{}, fmt.Errorf("find staff by email: %w", err)
	}
	return staff, nil
}
