package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/workpulse-backend-go/internal/domain/auth"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/jwt"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/oauth"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		jwtService:     jwtService,
		googleService:  googleService,
	}
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	department := req.Department
	if department == "" {
		department = "general"
	}

	u := user.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: &hashStr,
		Role:         user.RoleEmployee,
		Status:       user.StatusActive,
		Department:   department,
		JoinDate:     time.Now().UTC(),
		Schedule:     user.DefaultSchedule(),
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrUserNotFound
		}
		return auth.RefreshResponse{}, err
	}
	if !u.IsActive() {
		return auth.RefreshResponse{}, auth.ErrAccountInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.UserResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	subordinates, err := s.UserRepository.GetSubordinateIDs(ctx, u.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	u.SubordinateIDs = subordinates
	u.Permissions = permissionStrings(u.Role)

	return user.ToResponse(u), nil
}

// GoogleRedirectURL implements auth.AuthService.
func (s *AuthServiceImpl) GoogleRedirectURL(ctx context.Context) (string, string, error) {
	if s.googleService == nil {
		return "", "", auth.ErrOAuthNotConfigured
	}

	state, err := s.googleService.GenerateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate oauth state: %w", err)
	}

	return s.googleService.RedirectURL(state), state, nil
}

// GoogleCallback implements auth.AuthService.
func (s *AuthServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.LoginResponse, error) {
	if s.googleService == nil {
		return auth.LoginResponse{}, auth.ErrOAuthNotConfigured
	}

	token, err := s.googleService.ExchangeCode(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := s.googleService.FetchUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	u, err := s.UserRepository.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, err
	}
	if !u.IsActive() {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	return s.issueTokens(u)
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	u.Permissions = permissionStrings(u.Role)

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  user.ToResponse(u),
	}, nil
}

func permissionStrings(role user.Role) []string {
	perms := user.RolePermissions[role]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
