package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/pkg/auth"
)

// UserStore is the identity persistence the auth service needs.
type UserStore interface {
	Create(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	AttachGoogleID(userID uuid.UUID, googleID string) error
}

// AuthService handles signup, sign-in and token lifecycle
type AuthService struct {
	userRepo       UserStore
	jwtManager     *auth.JWTManager
	rdb            *redis.Client
	googleClientID string
}

func NewAuthService(userRepo UserStore, jwtManager *auth.JWTManager, rdb *redis.Client, googleClientID string) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtManager:     jwtManager,
		rdb:            rdb,
		googleClientID: googleClientID,
	}
}

// Signup creates a new email/password account and returns a token
func (s *AuthService) Signup(req model.SignupRequest) (*model.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("Server error during signup", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Server error during signup", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashedPassword),
		AuthProvider: model.AuthProviderEmail,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Two signups for the same email can race past the lookup above;
		// the unique index settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal("Server error during signup", err)
	}

	return s.issueToken(user)
}

// Signin authenticates an email/password user
func (s *AuthService) Signin(req model.SigninRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, apperr.Internal("Server error during signin", err)
	}

	// Google-only accounts have no password hash
	if user.Password == "" {
		return nil, apperr.Unauthorized("Please sign in with Google")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return s.issueToken(user)
}

// GoogleSignin finds or creates the account for a federated sign-in. When a
// Google client ID is configured the ID token is verified; the account keeps
// its email as the join key and only gains the googleId on first federated
// sign-in.
func (s *AuthService) GoogleSignin(req model.GoogleSigninRequest) (*model.AuthResponse, error) {
	googleID := req.IDToken
	name := req.Name

	if s.googleClientID != "" && req.IDToken != "" {
		payload, err := idtoken.Validate(context.Background(), req.IDToken, s.googleClientID)
		if err != nil {
			return nil, apperr.Unauthorized("Invalid Google token")
		}
		googleID = payload.Subject
		if n, ok := payload.Claims["name"].(string); ok && n != "" {
			name = n
		}
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("Server error during Google signin", err)
		}
		if name == "" {
			name = "User"
		}
		// Leave google_id NULL when the client sent no token: an empty
		// string would collide on the unique index at the second account.
		var googleRef *string
		if googleID != "" {
			googleRef = &googleID
		}
		user = &model.User{
			Name:         name,
			Email:        req.Email,
			AuthProvider: model.AuthProviderGoogle,
			GoogleID:     googleRef,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, apperr.Internal("Server error during Google signin", err)
		}
		return s.issueToken(user)
	}

	if user.GoogleID == nil && googleID != "" {
		if err := s.userRepo.AttachGoogleID(user.ID, googleID); err != nil {
			return nil, apperr.Internal("Server error during Google signin", err)
		}
	}

	return s.issueToken(user)
}

// GetProfile returns the current user's profile
func (s *AuthService) GetProfile(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while fetching profile", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

// Logout blacklists the token in Redis until it would have expired anyway
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return apperr.Unauthorized("Invalid or expired token")
	}

	expiresIn := time.Until(claims.ExpiresAt.Time)
	if expiresIn <= 0 {
		return nil
	}

	if err := s.rdb.Set(context.Background(), "blacklist:"+tokenString, "revoked", expiresIn).Err(); err != nil {
		return apperr.Internal("Server error during logout", err)
	}
	return nil
}

func (s *AuthService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}
	return &model.AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
