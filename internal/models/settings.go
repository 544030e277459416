package models

import (
	"fmt"
	"time"
)

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID uint = 1

// Settings is the single admin-mutated configuration row that drives order
// admission: the manual kill-switch, the operating-hours window and the daily
// quota measured in summed item quantity.
type Settings struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	OrderFormEnabled    bool      `gorm:"not null;default:true" json:"orderFormEnabled"`
	MaxDailyOrders      int       `gorm:"not null;default:10" json:"maxDailyOrders"`
	OperatingHoursStart int       `gorm:"not null;default:6" json:"operatingHoursStart"`
	OperatingHoursEnd   int       `gorm:"not null;default:21" json:"operatingHoursEnd"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DefaultSettings returns the row created at first startup.
func DefaultSettings() Settings {
	return Settings{
		ID:                  SettingsID,
		OrderFormEnabled:    true,
		MaxDailyOrders:      10,
		OperatingHoursStart: 6,
		OperatingHoursEnd:   21,
	}
}

// Validate rejects quota and hour-window values the admission gate cannot
// interpret. Wrap-around windows (start >= end) are rejected outright rather
// than guessed at.
func (s Settings) Validate() error {
	if s.MaxDailyOrders < 1 {
		return fmt.Errorf("maxDailyOrders must be at least 1, got %d", s.MaxDailyOrders)
	}
	if s.OperatingHoursStart < 0 || s.OperatingHoursStart > 23 {
		return fmt.Errorf("operatingHoursStart must be within [0,23], got %d", s.OperatingHoursStart)
	}
	if s.OperatingHoursEnd < 0 || s.OperatingHoursEnd > 23 {
		return fmt.Errorf("operatingHoursEnd must be within [0,23], got %d", s.OperatingHoursEnd)
	}
	if s.OperatingHoursStart >= s.OperatingHoursEnd {
		return fmt.Errorf("operating hours window [%d,%d) is empty or wraps around", s.OperatingHoursStart, s.OperatingHoursEnd)
	}
	return nil
}
