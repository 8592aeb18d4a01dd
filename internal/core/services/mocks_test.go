package services_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.AccountEntry, mirror domain.GeneralJournalEntry) error {
	args := m.Called(ctx, entry, mirror)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLastEntry(ctx context.Context, accountID string) (*domain.AccountEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AccountEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListAllEntriesByAccount(ctx context.Context, accountID string) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListGeneralJournal(ctx context.Context, limit int, nextToken *string) ([]domain.GeneralJournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.GeneralJournalEntry), returnedNextToken, args.Error(2)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error) {
	args := m.Called(ctx, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	args := m.Called(ctx, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock MessageRepository ---

type MockMessageRepository struct {
	mock.Mock
}

var _ portsrepo.MessageRepositoryFacade = (*MockMessageRepository)(nil)

func (m *MockMessageRepository) SaveMessage(ctx context.Context, message domain.PaymentMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindMessageByID(ctx context.Context, messageID string) (*domain.PaymentMessage, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMessage), args.Error(1)
}

func (m *MockMessageRepository) ListMessagesByParticipant(ctx context.Context, publicKey string, limit int, nextToken *string) ([]domain.PaymentMessage, *string, error) {
	args := m.Called(ctx, publicKey, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PaymentMessage), returnedNextToken, args.Error(2)
}

func (m *MockMessageRepository) UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, updatedBy string) error {
	args := m.Called(ctx, messageID, status, updatedBy)
	return args.Error(0)
}

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

var _ ports.AuditService = (*MockAuditService)(nil)

func (m *MockAuditService) CreateAction(ctx context.Context, description string, payload []byte) (domain.AuditRef, error) {
	args := m.Called(ctx, description, payload)
	return args.Get(0).(domain.AuditRef), args.Error(1)
}

// --- Mock IdentityProvider ---

type MockIdentityProvider struct {
	mock.Mock
}

var _ ports.IdentityProvider = (*MockIdentityProvider)(nil)

func (m *MockIdentityProvider) GetPublicKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) VerifySignature(ctx context.Context, publicKey, nonce, signature string) error {
	args := m.Called(ctx, publicKey, nonce, signature)
	return args.Error(0)
}

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

var _ ports.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) EntryPosted(ctx context.Context, accountID, accountName, entryID string) error {
	args := m.Called(ctx, accountID, accountName, entryID)
	return args.Error(0)
}

func (m *MockEventPublisher) PaymentMessageCreated(ctx context.Context, messageID, recipientPublicKey string) error {
	args := m.Called(ctx, messageID, recipientPublicKey)
	return args.Error(0)
}

// --- Fake Cipher ---

// stubCipher is a reversible cipher for tests: ciphertext is "enc:" plus the
// base64 of the plaintext, so assertions can decode entries the services
// produce.
type stubCipher struct{}

var _ ports.Cipher = (*stubCipher)(nil)

func (stubCipher) Encrypt(_ context.Context, plaintext string) (string, error) {
	return "enc:" + base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

func (stubCipher) Decrypt(_ context.Context, ciphertext string) (string, error) {
	raw, ok := strings.CutPrefix(ciphertext, "enc:")
	if !ok {
		return "", fmt.Errorf("unexpected ciphertext %q", ciphertext)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
