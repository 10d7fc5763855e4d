package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
)

const (
	// joinCodeAlphabet omits 0/O, 1/I to keep codes unambiguous when shared
	// by voice or handwriting.
	joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	joinCodeLength   = 6

	// Two concurrent creations can draw the same unused code; the unique
	// index rejects the second insert and we redraw.
	joinCodeInsertRetries = 5

	messageDefaultLimit = 50
	messageMaxLimit     = 200
)

// CommunityStore is the community persistence the service needs.
type CommunityStore interface {
	Create(community *model.Community) error
	FindByID(id uuid.UUID) (*model.Community, error)
	FindByJoinCode(code string) (*model.Community, error)
	JoinCodeExists(code string) (bool, error)
	ListPublic() ([]model.Community, error)
	ListForUser(userID uuid.UUID) ([]model.Community, error)
	AddMember(member *model.CommunityMember) error
	RemoveMember(communityID, userID uuid.UUID) error
	UpdateOwner(communityID, newOwnerID uuid.UUID, newOwnerName string) error
	DeleteWithMessages(communityID uuid.UUID) error
}

// MessageStore is the message persistence the service needs.
type MessageStore interface {
	Create(msg *model.CommunityMessage) error
	ListForCommunity(communityID uuid.UUID, limit int, descending bool) ([]model.CommunityMessage, error)
}

// CommunityService handles communities, membership and community chat.
type CommunityService struct {
	communityRepo CommunityStore
	msgRepo       MessageStore
	userRepo      UserStore
}

func NewCommunityService(communityRepo CommunityStore, msgRepo MessageStore, userRepo UserStore) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		msgRepo:       msgRepo,
		userRepo:      userRepo,
	}
}

// CreateCommunity creates a community with the caller as owner and sole
// member. Private communities get a freshly allocated join code; public ones
// get none. Owner and roster names are snapshots of the creator's profile at
// this moment.
func (s *CommunityService) CreateCommunity(userID uuid.UUID, req model.CreateCommunityRequest) (*model.CommunityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("Community name is required")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	profileName := s.profileName(userID)

	for attempt := 0; ; attempt++ {
		var joinCode *string
		if !isPublic {
			code, err := s.allocateJoinCode()
			if err != nil {
				return nil, err
			}
			joinCode = &code
		}

		community := &model.Community{
			Name:      name,
			IsPublic:  isPublic,
			OwnerID:   userID,
			OwnerName: profileName,
			JoinCode:  joinCode,
			Members: []model.CommunityMember{
				{UserID: userID, UserName: profileName, JoinedAt: time.Now()},
			},
		}

		err := s.communityRepo.Create(community)
		if err == nil {
			resp := formatCommunity(community, userID)
			return &resp, nil
		}
		// A colliding code committed between our existence check and the
		// insert; draw a fresh one and try again.
		if !isPublic && errors.Is(err, gorm.ErrDuplicatedKey) && attempt < joinCodeInsertRetries {
			continue
		}
		return nil, apperr.Internal("Server error while creating community", err)
	}
}

// ListPublic returns all public communities, newest first, formatted for the
// viewer. Join codes stay hidden here: public communities have none and the
// viewer cannot own a community they are browsing to join.
func (s *CommunityService) ListPublic(viewerID uuid.UUID) ([]model.CommunityResponse, error) {
	communities, err := s.communityRepo.ListPublic()
	if err != nil {
		return nil, apperr.Internal("Server error while fetching communities", err)
	}
	return formatCommunities(communities, viewerID), nil
}

// ListMine returns communities the user owns or belongs to, most recently
// updated first.
func (s *CommunityService) ListMine(userID uuid.UUID) ([]model.CommunityResponse, error) {
	communities, err := s.communityRepo.ListForUser(userID)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching your communities", err)
	}
	return formatCommunities(communities, userID), nil
}

// JoinPublic adds the user to a public community. Joining a community the
// user already belongs to is a silent success.
func (s *CommunityService) JoinPublic(userID, communityID uuid.UUID) (*model.CommunityResponse, error) {
	community, err := s.findCommunity(communityID)
	if err != nil {
		return nil, err
	}
	if !community.IsPublic {
		return nil, apperr.Forbidden("This community requires a join code")
	}
	return s.appendMember(community, userID)
}

// JoinWithCode adds the user to the private community holding the given
// code. Matching is case-insensitive on the trimmed code.
func (s *CommunityService) JoinWithCode(userID uuid.UUID, code string) (*model.CommunityResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.Validation("Join code is required")
	}

	community, err := s.communityRepo.FindByJoinCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Invalid join code")
		}
		return nil, apperr.Internal("Server error while joining with code", err)
	}
	return s.appendMember(community, userID)
}

// Leave removes the user from the roster. The owner can never leave; they
// must transfer ownership or delete the community. Leaving a community the
// user is not in is a silent success.
func (s *CommunityService) Leave(userID, communityID uuid.UUID) error {
	community, err := s.findCommunity(communityID)
	if err != nil {
		return err
	}
	if community.IsOwner(userID) {
		return apperr.Forbidden("Owner must transfer ownership or delete community")
	}
	if err := s.communityRepo.RemoveMember(communityID, userID); err != nil {
		return apperr.Internal("Server error while leaving community", err)
	}
	return nil
}

// Delete removes the community and cascades to its messages atomically, so
// no message of a deleted community stays readable.
func (s *CommunityService) Delete(userID, communityID uuid.UUID) error {
	community, err := s.findCommunity(communityID)
	if err != nil {
		return err
	}
	if !community.IsOwner(userID) {
		return apperr.Forbidden("Only owner can delete")
	}
	if err := s.communityRepo.DeleteWithMessages(communityID); err != nil {
		return apperr.Internal("Server error while deleting community", err)
	}
	return nil
}

// TransferOwnership hands the community to an existing member. The new
// owner's name snapshot comes from their roster entry, not a fresh profile
// lookup.
func (s *CommunityService) TransferOwnership(userID, communityID, newOwnerID uuid.UUID) error {
	community, err := s.findCommunity(communityID)
	if err != nil {
		return err
	}
	if !community.IsOwner(userID) {
		return apperr.Forbidden("Only owner can transfer ownership")
	}

	var newOwner *model.CommunityMember
	for i := range community.Members {
		if community.Members[i].UserID == newOwnerID {
			newOwner = &community.Members[i]
			break
		}
	}
	if newOwner == nil {
		return apperr.Validation("New owner must be a member")
	}

	if err := s.communityRepo.UpdateOwner(communityID, newOwnerID, newOwner.UserName); err != nil {
		return apperr.Internal("Server error while transferring ownership", err)
	}
	return nil
}

// PostMessage appends a message. Membership is re-checked at post time, and
// the sender's name is snapshotted onto the message.
func (s *CommunityService) PostMessage(userID uuid.UUID, req model.PostMessageRequest) (*model.CommunityMessage, error) {
	body := strings.TrimSpace(req.Message)
	if body == "" {
		return nil, apperr.Validation("Message cannot be empty")
	}

	community, err := s.findCommunity(req.CommunityID)
	if err != nil {
		return nil, err
	}
	if !community.HasMember(userID) {
		return nil, apperr.Forbidden("You must join the community to send messages")
	}

	msg := &model.CommunityMessage{
		CommunityID: community.ID,
		UserID:      userID,
		UserName:    s.profileName(userID),
		Body:        body,
	}
	if err := s.msgRepo.Create(msg); err != nil {
		return nil, apperr.Internal("Server error while sending message", err)
	}
	return msg, nil
}

// ListMessages returns messages gated by current membership. Ascending is
// oldest first; descending is newest first with the limit bounding the N
// most recent.
func (s *CommunityService) ListMessages(userID, communityID uuid.UUID, limit int, order string) ([]model.CommunityMessage, error) {
	community, err := s.findCommunity(communityID)
	if err != nil {
		return nil, err
	}
	if !community.HasMember(userID) {
		return nil, apperr.Forbidden("You must join the community to read messages")
	}

	if limit <= 0 {
		limit = messageDefaultLimit
	}
	if limit > messageMaxLimit {
		limit = messageMaxLimit
	}

	descending := strings.EqualFold(order, "desc") || strings.EqualFold(order, "descending")
	messages, err := s.msgRepo.ListForCommunity(communityID, limit, descending)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching messages", err)
	}
	return messages, nil
}

// ==================== Internal Helpers ====================

func (s *CommunityService) findCommunity(communityID uuid.UUID) (*model.Community, error) {
	community, err := s.communityRepo.FindByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Community not found")
		}
		return nil, apperr.Internal("Server error while fetching community", err)
	}
	return community, nil
}

// appendMember adds the user to the roster unless already present. The
// duplicate-key path covers two concurrent joins racing past the roster
// check.
func (s *CommunityService) appendMember(community *model.Community, userID uuid.UUID) (*model.CommunityResponse, error) {
	if !community.HasMember(userID) {
		member := &model.CommunityMember{
			CommunityID: community.ID,
			UserID:      userID,
			UserName:    s.profileName(userID),
			JoinedAt:    time.Now(),
		}
		if err := s.communityRepo.AddMember(member); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Internal("Server error while joining community", err)
		}
		refreshed, err := s.communityRepo.FindByID(community.ID)
		if err != nil {
			return nil, apperr.Internal("Server error while joining community", err)
		}
		community = refreshed
	}
	resp := formatCommunity(community, userID)
	return &resp, nil
}

// allocateJoinCode draws 6-character codes until one is unused. Collisions
// are rare enough at this scale that the loop effectively runs once; the
// unique index remains the real guard.
func (s *CommunityService) allocateJoinCode() (string, error) {
	for {
		code, err := randomJoinCode()
		if err != nil {
			return "", apperr.Internal("Server error while creating community", err)
		}
		exists, err := s.communityRepo.JoinCodeExists(code)
		if err != nil {
			return "", apperr.Internal("Server error while creating community", err)
		}
		if !exists {
			return code, nil
		}
	}
}

func randomJoinCode() (string, error) {
	code := make([]byte, joinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// profileName resolves the display name used for snapshots, falling back the
// way the mobile client expects when the account is gone.
func (s *CommunityService) profileName(userID uuid.UUID) string {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "User"
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return "User"
}

func formatCommunity(c *model.Community, viewerID uuid.UUID) model.CommunityResponse {
	isOwner := c.IsOwner(viewerID)
	var joinCode *string
	if !c.IsPublic && isOwner {
		joinCode = c.JoinCode
	}
	members := c.Members
	if members == nil {
		members = []model.CommunityMember{}
	}
	return model.CommunityResponse{
		ID:          c.ID,
		Name:        c.Name,
		IsPublic:    c.IsPublic,
		OwnerName:   c.OwnerName,
		MemberCount: len(members),
		IsOwner:     isOwner,
		IsMember:    c.HasMember(viewerID),
		JoinCode:    joinCode,
		Members:     members,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func formatCommunities(communities []model.Community, viewerID uuid.UUID) []model.CommunityResponse {
	result := make([]model.CommunityResponse, 0, len(communities))
	for i := range communities {
		result = append(result, formatCommunity(&communities[i], viewerID))
	}
	return result
}
