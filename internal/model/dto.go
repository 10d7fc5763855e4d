package model

import (
	"time"

	"github.com/google/uuid"
)

// ========== Auth DTOs ==========

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleSigninRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	IDToken string `json:"id_token"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ========== Steps DTOs ==========

// RecordStepsRequest uses a pointer for Steps so a missing count is
// distinguishable from zero.
type RecordStepsRequest struct {
	Steps  *int   `json:"steps"`
	Date   string `json:"date"`   // RFC3339 or YYYY-MM-DD, defaults to now
	Source string `json:"source"` // defaults to "Phone Sensor"
}

type StepsHistoryQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit,default=30"`
}

type StepsResponse struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Date     time.Time  `json:"date"`
	Steps    int        `json:"steps"`
	Source   string     `json:"source,omitempty"`
	SyncedAt *time.Time `json:"synced_at,omitempty"`
}

// ========== Workout DTOs ==========

// LogWorkoutRequest carries durations and calories as pointers so missing
// values fail validation instead of defaulting to zero.
type LogWorkoutRequest struct {
	WorkoutType     string   `json:"workout_type"`
	StartTime       string   `json:"start_time"`
	DurationSeconds *float64 `json:"duration_seconds"`
	Calories        *float64 `json:"calories"`
	MET             *float64 `json:"met"`
}

type WorkoutListQuery struct {
	Limit int `form:"limit,default=50"`
}

// ========== Community DTOs ==========

type CreateCommunityRequest struct {
	Name     string `json:"name"`
	IsPublic *bool  `json:"is_public"` // defaults to true
}

type JoinWithCodeRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

type LeaveCommunityRequest struct {
	CommunityID uuid.UUID `json:"community_id" binding:"required"`
}

type TransferOwnerRequest struct {
	CommunityID uuid.UUID `json:"community_id" binding:"required"`
	NewOwnerID  uuid.UUID `json:"new_owner_id" binding:"required"`
}

// CommunityResponse is a community formatted for one viewer: membership and
// ownership are computed relative to that viewer, and the join code is
// revealed only to the owner.
type CommunityResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	IsPublic    bool              `json:"is_public"`
	OwnerName   string            `json:"owner_name"`
	MemberCount int               `json:"member_count"`
	IsOwner     bool              `json:"is_owner"`
	IsMember    bool              `json:"is_member"`
	JoinCode    *string           `json:"join_code"`
	Members     []CommunityMember `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ========== Message DTOs ==========

type PostMessageRequest struct {
	CommunityID uuid.UUID `json:"community_id" binding:"required"`
	Message     string    `json:"message"`
}

type MessageListQuery struct {
	CommunityID string `form:"community_id" binding:"required"`
	Limit       int    `form:"limit,default=50"`
	Order       string `form:"order,default=asc"` // asc | desc
}

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
