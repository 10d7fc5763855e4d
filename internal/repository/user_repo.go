package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// UserRepository handles database operations for User
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by UUID
func (r *UserRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AttachGoogleID records the federated Google id on an existing account.
// This is the only mutation the identity record sees after creation.
func (r *UserRepository) AttachGoogleID(userID uuid.UUID, googleID string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"google_id":     googleID,
			"auth_provider": model.AuthProviderGoogle,
		}).Error
}
