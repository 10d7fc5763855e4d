package model

import (
	"time"

	"github.com/google/uuid"
)

// Community is a group of users sharing a chat. Private communities carry a
// unique join code; public ones have none. OwnerName is a snapshot of the
// owner's name at creation (or transfer) time and is not refreshed when the
// user renames themselves.
type Community struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	IsPublic  bool      `json:"is_public" gorm:"not null;default:true"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	OwnerName string    `json:"owner_name" gorm:"size:100"`
	JoinCode  *string   `json:"-" gorm:"uniqueIndex;size:6"` // nil for public communities
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members []CommunityMember `json:"members,omitempty" gorm:"foreignKey:CommunityID"`
}

// CommunityMember represents a user's membership in a community. The unique
// (community_id, user_id) index guarantees at most one roster entry per user.
// UserName is a snapshot taken when the user joined.
type CommunityMember struct {
	ID          uuid.UUID `json:"-" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommunityID uuid.UUID `json:"-" gorm:"type:uuid;uniqueIndex:idx_community_user;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_community_user;not null"`
	UserName    string    `json:"user_name" gorm:"size:100"`
	JoinedAt    time.Time `json:"joined_at"`
}

// CommunityMessage is an append-only chat message. UserName is a snapshot of
// the sender's name at post time. Visibility is gated by current membership
// of the community, checked on every read.
type CommunityMessage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommunityID uuid.UUID `json:"community_id" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	UserName    string    `json:"user_name" gorm:"size:100"`
	Body        string    `json:"message" gorm:"column:message;type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsOwner reports whether userID owns the community.
func (c *Community) IsOwner(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

// HasMember reports whether userID appears on the roster.
func (c *Community) HasMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
