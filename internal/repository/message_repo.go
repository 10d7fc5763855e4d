package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// MessageRepository handles database operations for CommunityMessage
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a new message
func (r *MessageRepository) Create(msg *model.CommunityMessage) error {
	return r.db.Create(msg).Error
}

// ListForCommunity returns up to limit messages in chronological order.
// Descending selects the N most recent, newest first; ascending selects the
// N oldest, oldest first.
func (r *MessageRepository) ListForCommunity(communityID uuid.UUID, limit int, descending bool) ([]model.CommunityMessage, error) {
	messages := []model.CommunityMessage{}
	order := "created_at ASC"
	if descending {
		order = "created_at DESC"
	}
	err := r.db.
		Where("community_id = ?", communityID).
		Order(order).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
