package database

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/models"
)

// Connect opens the Postgres connection used by every store. TranslateError
// is required so unique-index violations surface as gorm.ErrDuplicatedKey,
// which the intake path relies on for reference-collision retries.
func Connect(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// EnsureSchema migrates all tables and their indexes.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Settings{},
		&models.Order{},
		&models.Product{},
		&models.ProductSize{},
		&models.Staff{},
	)
}

// EnsureSettings creates the default settings row if it does not exist yet.
// Runs once at startup so reads never have to lazily initialize it.
func EnsureSettings(db *gorm.DB) error {
	var settings models.Settings
	err := db.First(&settings, models.SettingsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	defaults := models.DefaultSettings()
	if err := db.Create(&defaults).Error; err != nil {
		return err
	}
	log.Info().
		Int("max_daily_orders", defaults.MaxDailyOrders).
		Int("hours_start", defaults.OperatingHoursStart).
		Int("hours_end", defaults.OperatingHoursEnd).
		Msg("default settings row created")
	return nil
}
