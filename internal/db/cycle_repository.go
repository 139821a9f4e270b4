package db

import (
	"github.com/lunara-app/lunara/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) Create(entry *models.CycleEntry) error {
	return repo.database.Create(entry).Error
}

// FindLatestByUser returns the entry with the maximum start date for the
// owner. The bool reports whether any entry exists.
func (repo *CycleRepository) FindLatestByUser(userID uint) (models.CycleEntry, bool, error) {
	entry := models.CycleEntry{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *CycleRepository) ListByUserNewestFirst(userID uint) ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
