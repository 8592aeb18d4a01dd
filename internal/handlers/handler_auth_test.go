package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/handlers"
	"github.com/smallbooks/smallbooks_backend/internal/platform/config"
)

// AuthHandlerTestSuite exercises the public routes: login, first-boot
// bootstrap and the server identity endpoint. None of them carry a token.
type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAuthSvc *MockAuthService
	mockUserSvc *MockUserService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAuthSvc = new(MockAuthService)
	suite.mockUserSvc = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{
		Account: new(MockAccountService),
		Ledger:  new(MockLedgerService),
		Budget:  new(MockBudgetService),
		User:    suite.mockUserSvc,
		Message: new(MockMessageService),
		File:    new(MockFileService),
		Auth:    suite.mockAuthSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AuthHandlerTestSuite) doPublicRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestBootstrap_CreatesKeyPersonWithoutToken() {
	publicKey := uuid.NewString()
	req := dto.CreateUserRequest{PublicKey: publicKey, Email: "owner@example.com"}
	created := &domain.User{
		PublicKey: publicKey,
		Email:     req.Email,
		Role:      domain.RoleKeyPerson,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: publicKey,
		},
	}

	suite.mockUserSvc.On("BootstrapUser", mock.Anything, mock.MatchedBy(func(r dto.CreateUserRequest) bool {
		return r.PublicKey == publicKey
	})).Return(created, nil).Once()

	w := suite.doPublicRequest(http.MethodPost, "/auth/bootstrap", req)

	suite.Equal(http.StatusCreated, w.Code, "bootstrap must work with no Authorization header")
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.RoleKeyPerson, resp.Role)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestBootstrap_RefusedOnceInitialised() {
	req := dto.CreateUserRequest{PublicKey: uuid.NewString(), Email: "late@example.com"}

	suite.mockUserSvc.On("BootstrapUser", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: team already initialised", apperrors.ErrConflict)).Once()

	w := suite.doPublicRequest(http.MethodPost, "/auth/bootstrap", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownUserRejected() {
	req := dto.LoginRequest{PublicKey: uuid.NewString(), Nonce: "nonce", Signature: "sig"}

	suite.mockAuthSvc.On("Login", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to fetch user %s: %w", req.PublicKey, apperrors.ErrNotFound)).Once()

	w := suite.doPublicRequest(http.MethodPost, "/auth/login", req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestCreateUser_RequiresToken() {
	req := dto.CreateUserRequest{PublicKey: uuid.NewString(), Email: "member@example.com"}

	w := suite.doPublicRequest(http.MethodPost, "/api/v1/users", req)

	suite.Equal(http.StatusUnauthorized, w.Code, "only bootstrap is open; user creation stays behind auth")
	suite.mockUserSvc.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "BootstrapUser", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestServerIdentity_ReturnsPublicKey() {
	serverKey := uuid.NewString()

	suite.mockAuthSvc.On("ServerIdentity", mock.Anything).Return(serverKey, nil).Once()

	w := suite.doPublicRequest(http.MethodGet, "/auth/identity", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ServerIdentityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(serverKey, resp.PublicKey)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
