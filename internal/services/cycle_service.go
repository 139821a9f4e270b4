package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/lunara-app/lunara/internal/models"
)

var ErrMissingStartDate = errors.New("start date is required")

type CycleRepository interface {
	Create(entry *models.CycleEntry) error
	FindLatestByUser(userID uint) (models.CycleEntry, bool, error)
	ListByUserNewestFirst(userID uint) ([]models.CycleEntry, error)
}

type CycleService struct {
	cycles CycleRepository
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{cycles: cycles}
}

// LogCycleStart records a new cycle entry for the owner. Entries are
// immutable; a zero durationDays falls back to the default.
func (service *CycleService) LogCycleStart(userID uint, startDate time.Time, durationDays int, notes string) (models.CycleEntry, error) {
	if startDate.IsZero() {
		return models.CycleEntry{}, ErrMissingStartDate
	}
	if durationDays <= 0 {
		durationDays = models.DefaultPeriodDuration
	}

	entry := models.CycleEntry{
		UserID:          userID,
		StartDate:       startDate,
		DurationDays:    durationDays,
		CycleLengthDays: models.DefaultCycleLength,
		Notes:           notes,
		CreatedAt:       time.Now(),
	}
	if err := service.cycles.Create(&entry); err != nil {
		return models.CycleEntry{}, err
	}
	return entry, nil
}

// Latest returns the entry with the maximum start date among the owner's
// entries. The bool reports whether any entry exists.
func (service *CycleService) Latest(userID uint) (models.CycleEntry, bool, error) {
	return service.cycles.FindLatestByUser(userID)
}

func (service *CycleService) List(userID uint) ([]models.CycleEntry, error) {
	return service.cycles.ListByUserNewestFirst(userID)
}

// NextExpectedStart estimates the next cycle start from an entry. The cycle
// length is a read-time estimate only, never validated against the log.
func NextExpectedStart(entry models.CycleEntry) time.Time {
	length := entry.CycleLengthDays
	if length <= 0 {
		length = models.DefaultCycleLength
	}
	return entry.StartDate.AddDate(0, 0, length)
}

// CycleContextFact renders the natural-language fact handed to the assistant
// as health context for a turn.
func CycleContextFact(entry models.CycleEntry, found bool) string {
	if !found {
		return "You do not have any data about the user's cycle yet."
	}
	length := entry.CycleLengthDays
	if length <= 0 {
		length = models.DefaultCycleLength
	}
	return fmt.Sprintf(
		"The user's last cycle started on %s. The average cycle length is %d days.",
		entry.StartDate.Format("Monday, January 2, 2006"),
		length,
	)
}
