package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
	"github.com/yigit/coursewindow/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *auth.JWTService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursewindow",
	})
	return NewAuthService(AdminCredentials{Username: "admin", PasswordHash: string(hash)}, jwtService, zerolog.Nop()), jwtService
}

func TestLogin(t *testing.T) {
	svc, jwtService := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: " admin ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := jwtService.ValidateAndExtractClaims(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.RoleType)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, req := range []dto.LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "s3cret"},
		{Username: "", Password: ""},
	} {
		_, err := svc.Login(context.Background(), &req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}
