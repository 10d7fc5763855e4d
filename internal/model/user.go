package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider defines how the user authenticates
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents a registered user. It is the identity anchor every other
// record references by id; after creation it is only mutated to attach a
// federated Google id.
type User struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string       `json:"name" gorm:"size:100;not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password     string       `json:"-" gorm:"size:255"` // empty for Google sign-in users
	AuthProvider AuthProvider `json:"auth_provider" gorm:"type:varchar(20);default:'email'"`
	GoogleID     *string      `json:"-" gorm:"uniqueIndex;size:255"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// UserResponse is the safe version of User for API responses
type UserResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	AuthProvider AuthProvider `json:"auth_provider"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ToResponse converts User to safe UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}
