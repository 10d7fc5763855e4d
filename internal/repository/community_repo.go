package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// CommunityRepository handles database operations for Community and its
// membership roster.
type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Create inserts a new community with its initial members
func (r *CommunityRepository) Create(community *model.Community) error {
	return r.db.Create(community).Error
}

// FindByID finds a community by ID with its roster
func (r *CommunityRepository) FindByID(id uuid.UUID) (*model.Community, error) {
	var community model.Community
	err := r.db.
		Preload("Members").
		Where("id = ?", id).
		First(&community).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// FindByJoinCode finds a private community by its join code (stored uppercase)
func (r *CommunityRepository) FindByJoinCode(code string) (*model.Community, error) {
	var community model.Community
	err := r.db.
		Preload("Members").
		Where("join_code = ?", code).
		First(&community).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// JoinCodeExists reports whether any community holds the given code
func (r *CommunityRepository) JoinCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Community{}).
		Where("join_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// ListPublic returns all public communities, newest first
func (r *CommunityRepository) ListPublic() ([]model.Community, error) {
	communities := []model.Community{}
	err := r.db.
		Preload("Members").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&communities).Error
	return communities, err
}

// ListForUser returns communities the user owns or belongs to, most recently
// updated first.
func (r *CommunityRepository) ListForUser(userID uuid.UUID) ([]model.Community, error) {
	communities := []model.Community{}
	memberOf := r.db.Model(&model.CommunityMember{}).
		Select("community_id").
		Where("user_id = ?", userID)
	err := r.db.
		Preload("Members").
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("updated_at DESC").
		Find(&communities).Error
	return communities, err
}

// AddMember appends a roster entry and bumps the community's updated_at so
// my-communities sorts it to the top. The unique (community_id, user_id)
// index rejects a duplicate entry.
func (r *CommunityRepository) AddMember(member *model.CommunityMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return err
	}
	return r.touchUpdatedAt(member.CommunityID)
}

// RemoveMember deletes the matching roster entry. Removing a non-member
// deletes nothing and is not an error.
func (r *CommunityRepository) RemoveMember(communityID, userID uuid.UUID) error {
	err := r.db.
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{}).Error
	if err != nil {
		return err
	}
	return r.touchUpdatedAt(communityID)
}

// IsMember checks if a user is on the community's roster
func (r *CommunityRepository) IsMember(communityID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

// UpdateOwner changes the owner and refreshes the denormalized owner name
// from the new owner's roster snapshot.
func (r *CommunityRepository) UpdateOwner(communityID, newOwnerID uuid.UUID, newOwnerName string) error {
	return r.db.Model(&model.Community{}).
		Where("id = ?", communityID).
		Updates(map[string]interface{}{
			"owner_id":   newOwnerID,
			"owner_name": newOwnerName,
		}).Error
}

// DeleteWithMessages removes the community, its roster and all its messages
// in one transaction, so no message of a deleted community stays readable.
func (r *CommunityRepository) DeleteWithMessages(communityID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", communityID).
			Delete(&model.CommunityMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", communityID).
			Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", communityID).
			Delete(&model.Community{}).Error
	})
}

func (r *CommunityRepository) touchUpdatedAt(communityID uuid.UUID) error {
	return r.db.Model(&model.Community{}).
		Where("id = ?", communityID).
		Update("updated_at", gorm.Expr("NOW()")).Error
}
