package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type credentialChecker interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// Identity is what the console knows about the signed-in operator.
type Identity struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// HasRole reports whether the identity holds one of roles. No roles means any signed-in operator.
func (i *Identity) HasRole(roles ...string) bool {
	if i == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == i.Role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the operator can manage users.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(models.RoleAdmin)
}

// AuthService signs operators in and out and reads their token claims.
// Claims are decoded without signature verification: they only drive navigation,
// the backends authorize every call themselves.
type AuthService struct {
	users     credentialChecker
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
	parser    *jwt.Parser
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users credentialChecker, sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		parser:    jwt.NewParser(),
		now:       time.Now,
	}
}

// ParseClaims decodes the token payload.
func (s *AuthService) ParseClaims(token string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Identify returns the identity carried by token, or ErrUnauthorized when the token cannot be
// decoded, has no expiry or has expired.
func (s *AuthService) Identify(token string) (*Identity, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	claims, err := s.ParseClaims(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(s.now()) {
		return nil, appErrors.ErrUnauthorized
	}
	return &Identity{
		Subject:   claims.Subject,
		Role:      claims.PrimaryRole(),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Login validates credentials with the auth service and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	token, err := s.users.Login(ctx, req)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	identity, err := s.Identify(token)
	if err != nil {
		s.logger.Warn("auth service returned an unusable token", zap.String("username", req.Username), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "El servidor devolvió un token inválido")
	}

	username := identity.Subject
	if username == "" {
		username = req.Username
	}
	return s.sessions.Create(ctx, token, username, identity.ExpiresAt)
}

// Logout destroys the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil && !errors.Is(err, appErrors.ErrSessionMiss) {
		s.logger.Warn("logout failed", zap.Error(err))
		return err
	}
	return nil
}
