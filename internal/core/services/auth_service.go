package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// AuthConfig carries the token-issuing parameters.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// authService authenticates wallet signatures through the identity provider
// and issues bearer tokens.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	identity ports.IdentityProvider
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, identity ports.IdentityProvider, cfg AuthConfig) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, identity: identity, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies that the caller controls the claimed public key and issues
// a JWT whose subject is that key. Removed users cannot log in.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.identity.VerifySignature(ctx, req.PublicKey, req.Nonce, req.Signature); err != nil {
		logger.Warn("Signature verification failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: signature does not match public key", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByPublicKey(ctx, req.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", req.PublicKey, err)
	}
	if user.Role == domain.RoleDeleted {
		return nil, fmt.Errorf("%w: user has been removed", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.JWTExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   user.PublicKey,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("public_key", user.PublicKey))
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ServerIdentity returns the server wallet's public key.
func (s *authService) ServerIdentity(ctx context.Context) (string, error) {
	publicKey, err := s.identity.GetPublicKey(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch server identity: %w", err)
	}
	return publicKey, nil
}
