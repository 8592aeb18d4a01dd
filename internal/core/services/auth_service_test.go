package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/core/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockIdentity *MockIdentityProvider
	service      portssvc.AuthSvcFacade

	ctx context.Context
	cfg services.AuthConfig
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockIdentity = new(MockIdentityProvider)
	s.cfg = services.AuthConfig{
		JWTSecret: "test-secret-key-that-is-long-enough",
		JWTExpiry: time.Hour,
		JWTIssuer: "smallbooks-test",
	}
	s.service = services.NewAuthService(s.mockUserRepo, s.mockIdentity, s.cfg)
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) TestLoginIssuesTokenForVerifiedKey() {
	publicKey := uuid.NewString()
	req := dto.LoginRequest{PublicKey: publicKey, Nonce: "nonce", Signature: "sig"}
	user := domain.User{PublicKey: publicKey, Role: domain.RoleManager}

	s.mockIdentity.On("VerifySignature", s.ctx, publicKey, "nonce", "sig").Return(nil)
	s.mockUserRepo.On("FindUserByPublicKey", s.ctx, publicKey).Return(&user, nil)

	resp, err := s.service.Login(s.ctx, req)
	s.Require().NoError(err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	s.Require().NoError(err)
	s.Equal(publicKey, claims.Subject, "the token subject is the wallet public key")
	s.Equal(s.cfg.JWTIssuer, claims.Issuer)
}

func (s *AuthServiceTestSuite) TestLoginRejectsBadSignature() {
	req := dto.LoginRequest{PublicKey: uuid.NewString(), Nonce: "nonce", Signature: "forged"}

	s.mockIdentity.On("VerifySignature", s.ctx, req.PublicKey, "nonce", "forged").
		Return(apperrors.ErrForbidden)

	_, err := s.service.Login(s.ctx, req)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockUserRepo.AssertNotCalled(s.T(), "FindUserByPublicKey", s.ctx, req.PublicKey)
}

func (s *AuthServiceTestSuite) TestLoginRejectsRemovedUser() {
	publicKey := uuid.NewString()
	req := dto.LoginRequest{PublicKey: publicKey, Nonce: "nonce", Signature: "sig"}
	removed := domain.User{PublicKey: publicKey, Role: domain.RoleDeleted}

	s.mockIdentity.On("VerifySignature", s.ctx, publicKey, "nonce", "sig").Return(nil)
	s.mockUserRepo.On("FindUserByPublicKey", s.ctx, publicKey).Return(&removed, nil)

	_, err := s.service.Login(s.ctx, req)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *AuthServiceTestSuite) TestServerIdentityComesFromWallet() {
	serverKey := uuid.NewString()

	s.mockIdentity.On("GetPublicKey", s.ctx).Return(serverKey, nil)

	got, err := s.service.ServerIdentity(s.ctx)
	s.Require().NoError(err)
	s.Equal(serverKey, got)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
