package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/photoproof/photoproof-api/internal/domain/studio"
	"github.com/photoproof/photoproof-api/internal/domain/user"
	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/jwt"
)

// Service contains authentication business logic
type Service struct {
	users      user.Repository
	studios    studio.Repository
	jwtService *jwt.Service
	tokens     TokenStore
}

// NewService creates auth service. tokens may be nil, in which case
// refresh tokens are validated statelessly without rotation tracking.
func NewService(users user.Repository, studios studio.Repository, jwtService *jwt.Service, tokens TokenStore) *Service {
	return &Service{users: users, studios: studios, jwtService: jwtService, tokens: tokens}
}

// Register creates a studio and its owner user, then logs them in
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &studio.Studio{
		ID:        uuid.NewString(),
		Name:      req.StudioName,
		Email:     req.Email,
		Timezone:  "UTC",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.studios.Create(ctx, st); err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.NewString(),
		StudioID:     st.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         middleware.RoleStudioOwner,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// Refresh rotates a refresh token into a fresh token pair
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	userID := claims.UserID
	if s.tokens != nil {
		stored, err := s.tokens.Consume(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if stored != userID {
			return nil, ErrInvalidRefresh
		}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidRefresh
	}

	return s.issueTokens(ctx, u)
}

// Logout revokes the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil // Already unusable
	}
	if s.tokens != nil {
		return s.tokens.Revoke(ctx, claims.ID)
	}
	return nil
}

// Me returns the authenticated user's account
func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	access, err := s.jwtService.GenerateAccessToken(u.ID, u.StudioID, u.Role)
	if err != nil {
		return nil, err
	}

	refresh, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if s.tokens != nil {
		if err := s.tokens.Save(ctx, jti, u.ID, time.Until(expiresAt)); err != nil {
			return nil, err
		}
	}

	return &AuthResponse{
		User: u,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.jwtService.GetAccessTTL().Seconds()),
		},
	}, nil
}
