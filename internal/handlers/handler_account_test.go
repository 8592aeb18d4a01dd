package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/handlers"
	"github.com/smallbooks/smallbooks_backend/internal/platform/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorPublicKey string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostEntry(ctx context.Context, accountID string, req dto.PostEntryRequest, actorPublicKey string) (*domain.AccountEntry, error) {
	args := m.Called(ctx, accountID, req, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountEntry), args.Error(1)
}
func (m *MockLedgerService) GetLastEntry(ctx context.Context, accountID string, actorPublicKey string) (*dto.LastEntryResponse, error) {
	args := m.Called(ctx, accountID, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LastEntryResponse), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, accountID string, params dto.ListEntriesParams, actorPublicKey string) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, accountID, params, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockLedgerService) ListGeneralJournal(ctx context.Context, params dto.ListGeneralJournalParams, actorPublicKey string) (*dto.ListGeneralJournalResponse, error) {
	args := m.Called(ctx, params, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListGeneralJournalResponse), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) RunningTotal(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetService) AccountAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AverageResponse), args.Error(1)
}
func (m *MockBudgetService) LiabilityAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AverageResponse), args.Error(1)
}
func (m *MockBudgetService) MonthlyProjection(req dto.ProjectionRequest) *dto.ProjectionResponse {
	args := m.Called(req)
	return args.Get(0).(*dto.ProjectionResponse)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) BootstrapUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorPublicKey string) (*domain.User, error) {
	args := m.Called(ctx, req, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error) {
	args := m.Called(ctx, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	args := m.Called(ctx, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, publicKey string, req dto.UpdateUserRequest, actorPublicKey string) (*domain.User, error) {
	args := m.Called(ctx, publicKey, req, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RemoveUser(ctx context.Context, publicKey string, actorPublicKey string) error {
	args := m.Called(ctx, publicKey, actorPublicKey)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock MessageService ---
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) CreateMessage(ctx context.Context, req dto.CreateMessageRequest, senderPublicKey string) (*domain.PaymentMessage, error) {
	args := m.Called(ctx, req, senderPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMessage), args.Error(1)
}
func (m *MockMessageService) ListMessages(ctx context.Context, participantPublicKey string, params dto.ListMessagesParams) (*dto.ListMessagesResponse, error) {
	args := m.Called(ctx, participantPublicKey, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMessagesResponse), args.Error(1)
}
func (m *MockMessageService) UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, actorPublicKey string) (*domain.PaymentMessage, error) {
	args := m.Called(ctx, messageID, status, actorPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMessage), args.Error(1)
}

var _ portssvc.MessageSvcFacade = (*MockMessageService)(nil)

// --- Mock FileService ---
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, name, contentType string, data []byte, uploaderPublicKey string) (*domain.InvoiceFile, error) {
	args := m.Called(ctx, name, contentType, data, uploaderPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceFile), args.Error(1)
}
func (m *MockFileService) Download(ctx context.Context, hash string) (*domain.InvoiceFile, []byte, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.InvoiceFile), args.Get(1).([]byte), args.Error(2)
}

var _ portssvc.FileSvcFacade = (*MockFileService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) ServerIdentity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAccountSvc *MockAccountService
	mockLedgerSvc  *MockLedgerService
	mockBudgetSvc  *MockBudgetService
	jwtSecret      string
	actorPublicKey string
}

// generateTestToken creates a signed JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(publicKey string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "smallbooks-test",
		Subject:   publicKey,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.actorPublicKey = uuid.NewString()

	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockBudgetSvc = new(MockBudgetService)

	cfg := &config.Config{
		JWTSecret: suite.jwtSecret,
		// Skips the swagger routes, which are irrelevant here.
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{
		Account: suite.mockAccountSvc,
		Ledger:  suite.mockLedgerSvc,
		Budget:  suite.mockBudgetSvc,
		User:    new(MockUserService),
		Message: new(MockMessageService),
		File:    new(MockFileService),
		Auth:    new(MockAuthService),
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
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
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actorPublicKey))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestPostEntry_Success() {
	accountID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:        "2026-03-15",
		Description: "office chairs",
		Debit:       decimal.NewFromInt(250),
	}

	entryDate, _ := time.Parse(dto.EntryDateFormat, req.Date)
	expectedEntry := &domain.AccountEntry{
		EntryID:    uuid.NewString(),
		AccountID:  accountID,
		SequenceNo: 5,
		EntryDate:  entryDate,
		Fields: domain.EntryFields{
			Description:    req.Description,
			Debit:          req.Debit,
			Credit:         decimal.Zero,
			RunningTotal:   decimal.NewFromInt(350),
			OwnerPublicKey: suite.actorPublicKey,
		},
		CreatedAt: time.Now().UTC(),
		CreatedBy: suite.actorPublicKey,
	}

	suite.mockLedgerSvc.On("PostEntry",
		mock.Anything,
		accountID,
		mock.MatchedBy(func(r dto.PostEntryRequest) bool {
			return r.Date == req.Date && r.Debit.Equal(req.Debit)
		}),
		suite.actorPublicKey,
	).Return(expectedEntry, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/entries", accountID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expectedEntry.EntryID, resp.EntryID)
	suite.Equal(int64(5), resp.SequenceNo)
	suite.True(resp.RunningTotal.Equal(decimal.NewFromInt(350)))
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestPostEntry_ForbiddenRole() {
	accountID := uuid.NewString()
	req := dto.PostEntryRequest{Date: "2026-03-15", Debit: decimal.NewFromInt(10)}

	suite.mockLedgerSvc.On("PostEntry", mock.Anything, accountID, mock.Anything, suite.actorPublicKey).
		Return(nil, fmt.Errorf("%w: role may not post to this account", apperrors.ErrForbidden)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/entries", accountID), req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestPostEntry_SequenceConflict() {
	accountID := uuid.NewString()
	req := dto.PostEntryRequest{Date: "2026-03-15", Credit: decimal.NewFromInt(40)}

	suite.mockLedgerSvc.On("PostEntry", mock.Anything, accountID, mock.Anything, suite.actorPublicKey).
		Return(nil, fmt.Errorf("%w: sequence 7 already taken", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/entries", accountID), req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestPostEntry_AccountNotFound() {
	accountID := uuid.NewString()
	req := dto.PostEntryRequest{Date: "2026-03-15", Debit: decimal.NewFromInt(10)}

	suite.mockLedgerSvc.On("PostEntry", mock.Anything, accountID, mock.Anything, suite.actorPublicKey).
		Return(nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, accountID)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/entries", accountID), req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestPostEntry_Unauthenticated() {
	accountID := uuid.NewString()
	raw, _ := json.Marshal(dto.PostEntryRequest{Date: "2026-03-15"})
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/entries", accountID), bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateName() {
	req := dto.CreateAccountRequest{Name: "Cash", Basket: domain.Asset}

	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.Anything, suite.actorPublicKey).
		Return(nil, fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, req.Name)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetRunningTotal_Success() {
	accountID := uuid.NewString()

	suite.mockBudgetSvc.On("RunningTotal", mock.Anything, accountID).
		Return(decimal.NewFromInt(1234), nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/running-total", accountID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RunningTotalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.RunningTotal.Equal(decimal.NewFromInt(1234)))
	suite.mockBudgetSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetLastEntry_EmptyLedger() {
	accountID := uuid.NewString()

	suite.mockLedgerSvc.On("GetLastEntry", mock.Anything, accountID, suite.actorPublicKey).
		Return(nil, fmt.Errorf("%w: ledger is empty", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/entries/last", accountID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
