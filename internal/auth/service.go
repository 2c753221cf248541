// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
	"github.com/carterperez-dev/campaign-studio/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const guestRole = "guest"

// UserInfo is the slice of a user record the auth flows need.
type UserInfo struct {
	ID           string
	Username     string
	Email        string
	FirstName    *string
	LastName     *string
	PasswordHash string
	RoleName     string
	IsActive     bool
	CreatedAt    time.Time
}

type NewAccount struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
}

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	CreateAccount(ctx context.Context, account NewAccount) (*UserInfo, error)
	TouchLastLogin(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	tokens      *TokenManager
	users       UserProvider
	revocations RevocationStore
}

func NewService(
	tokens *TokenManager,
	users UserProvider,
	revocations RevocationStore,
) *Service {
	return &Service{
		tokens:      tokens,
		users:       users,
		revocations: revocations,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing with the known-user path
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.Warn("password rehash failed", "user_id", user.ID, "error", err)
		}
	}

	s.touchLastLogin(ctx, user.ID)

	return s.issuePair(user)
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateAccount(ctx, NewAccount{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return nil, err
	}

	s.touchLastLogin(ctx, user.ID)

	return s.issuePair(user)
}

// Refresh exchanges a refresh token for a new pair. The presented refresh
// token is revoked so it cannot be exchanged twice.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.tokens.DecodeAs(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.checkNotRevoked(ctx, claims.TokenID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("refresh: inactive user: %w", core.ErrTokenInvalid)
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.issuePair(user)
}

// Logout revokes the presented access token and, when supplied and owned
// by the same user, the refresh token.
func (s *Service) Logout(
	ctx context.Context,
	access *middleware.AccessTokenClaims,
	refreshToken string,
) error {
	if err := s.revocations.Revoke(ctx, access.TokenID, access.ExpiresAt); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.DecodeAs(refreshToken, TokenTypeRefresh)
	if err != nil || claims.UserID != access.UserID {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// VerifyAccessToken backs the authenticator. Revocation lookups that fail
// are treated as revoked.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.tokens.DecodeAs(token, TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	if err := s.checkNotRevoked(ctx, claims.TokenID); err != nil {
		return nil, err
	}

	return &middleware.AccessTokenClaims{
		UserID:    claims.UserID,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (*MeResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      roleOrGuest(user.RoleName),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) checkNotRevoked(ctx context.Context, jti string) error {
	revoked, err := s.revocations.IsRevoked(ctx, jti)
	if err != nil {
		slog.Warn("revocation lookup failed", "error", err)
		return fmt.Errorf("check revocation: %w", core.ErrTokenRevoked)
	}
	if revoked {
		return fmt.Errorf("token %s: %w", jti, core.ErrTokenRevoked)
	}
	return nil
}

func (s *Service) touchLastLogin(ctx context.Context, userID string) {
	if err := s.users.TouchLastLogin(ctx, userID); err != nil {
		slog.Warn("last login update failed", "user_id", userID, "error", err)
	}
}

func (s *Service) issuePair(user *UserInfo) (*TokenResponse, error) {
	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTokenTTL() / time.Second),
		User: &UserResponse{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      roleOrGuest(user.RoleName),
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

func roleOrGuest(role string) string {
	if role == "" {
		return guestRole
	}
	return role
}
