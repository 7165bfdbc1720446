package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
	"github.com/yigit/coursewindow/internal/pkg/auth"
)

// AdminCredentials is the configured administrator account
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService handles administrator authentication
type AuthService struct {
	admin      AdminCredentials
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(admin AdminCredentials, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		admin:      admin,
		jwtService: jwtService,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// Login checks the administrator credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	userMatches := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1

	// bcrypt runs even for unknown usernames so both failures take the same time
	passwordMatches := auth.CheckPassword(s.admin.PasswordHash, req.Password)

	if !userMatches || !passwordMatches {
		s.logger.Warn().Str("username", username).Msg("Failed admin login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(s.admin.Username, string(models.RoleAdmin))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
