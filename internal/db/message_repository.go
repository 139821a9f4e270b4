package db

import (
	"github.com/lunara-app/lunara/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	database *gorm.DB
}

func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{database: database}
}

// Append stores a new message for its owner, allocating the next per-owner
// sequence number inside the same transaction. Two concurrent turns from one
// user therefore never share a sequence value; the unique (user_id, seq)
// index makes the allocation race a retryable constraint error rather than a
// silent tie.
func (repo *MessageRepository) Append(message *models.Message) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var lastSeq uint64
		if err := tx.Model(&models.Message{}).
			Where("user_id = ?", message.UserID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&lastSeq).Error; err != nil {
			return err
		}
		message.Seq = lastSeq + 1
		return tx.Create(message).Error
	})
}

func (repo *MessageRepository) ListByUserNewestFirst(userID uint, limit int) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	query := repo.database.Where("user_id = ?", userID).Order("seq DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
