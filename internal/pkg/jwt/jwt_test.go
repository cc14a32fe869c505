package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.cd", user.RoleEmployee)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claim, _ := token.Get("user_id")
	assert.Equal(t, "user-1", claim)
	claim, _ = token.Get("type")
	assert.Equal(t, "access", claim)
	claim, _ = token.Get("role")
	assert.Equal(t, "employee", claim)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("tok", 1750000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
