package auth

import (
	"context"

	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates an employee account and signs it in.
	Register(ctx context.Context, req RegisterRequest) (LoginResponse, error)

	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)

	// Logout revokes the refresh token; access tokens expire on their own.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the profile of the authenticated account.
	Me(ctx context.Context) (user.UserResponse, error)

	// GoogleRedirectURL returns the OAuth consent URL and the state value
	// the callback must echo.
	GoogleRedirectURL(ctx context.Context) (url string, state string, err error)

	// GoogleCallback finishes the OAuth flow and signs in the linked
	// account.
	GoogleCallback(ctx context.Context, code string) (LoginResponse, error)
}
