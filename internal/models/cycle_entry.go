package models

import "time"

const (
	DefaultPeriodDuration = 5
	DefaultCycleLength    = 28
)

// CycleEntry is a logged cycle start. Entries are immutable once created;
// CycleLengthDays is only a read-time estimate for "days until next cycle",
// never enforced against the log.
type CycleEntry struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	StartDate       time.Time `gorm:"not null"`
	DurationDays    int       `gorm:"not null;default:5"`
	CycleLengthDays int       `gorm:"not null;default:28"`
	Notes           string
	CreatedAt       time.Time `gorm:"not null"`
}
