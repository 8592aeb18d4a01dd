package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/core/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

type MessageServiceTestSuite struct {
	suite.Suite
	mockMessageRepo *MockMessageRepository
	mockUserRepo    *MockUserRepository
	mockEvents      *MockEventPublisher
	service         portssvc.MessageSvcFacade

	ctx          context.Context
	senderKey    string
	recipientKey string
	recipient    domain.User
}

func (s *MessageServiceTestSuite) SetupTest() {
	s.mockMessageRepo = new(MockMessageRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockEvents = new(MockEventPublisher)
	s.service = services.NewMessageService(s.mockMessageRepo, s.mockUserRepo, s.mockEvents)

	s.ctx = context.Background()
	s.senderKey = uuid.NewString()
	s.recipientKey = uuid.NewString()
	s.recipient = domain.User{PublicKey: s.recipientKey, Role: domain.RoleStaff}
}

func (s *MessageServiceTestSuite) TestCreateMessageStartsPending() {
	req := dto.CreateMessageRequest{
		RecipientPublicKey: s.recipientKey,
		Type:               domain.MessageRequest,
		Amount:             decimal.RequireFromString("75.00"),
		Body:               "reimbursement for supplies",
	}

	s.mockUserRepo.On("FindUserByPublicKey", s.ctx, s.recipientKey).Return(&s.recipient, nil)
	s.mockMessageRepo.On("SaveMessage", s.ctx, mock.AnythingOfType("domain.PaymentMessage")).Return(nil)
	s.mockEvents.On("PaymentMessageCreated", s.ctx, mock.Anything, s.recipientKey).Return(nil)

	msg, err := s.service.CreateMessage(s.ctx, req, s.senderKey)
	s.Require().NoError(err)
	s.Equal(domain.MessagePending, msg.Status, "new messages always start PENDING")
	s.Equal(s.senderKey, msg.SenderPublicKey)
}

func (s *MessageServiceTestSuite) TestCreateMessageRejectsUnknownRecipient() {
	req := dto.CreateMessageRequest{RecipientPublicKey: s.recipientKey, Type: domain.MessagePayment}

	s.mockUserRepo.On("FindUserByPublicKey", s.ctx, s.recipientKey).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.CreateMessage(s.ctx, req, s.senderKey)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockMessageRepo.AssertNotCalled(s.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func (s *MessageServiceTestSuite) TestCreateMessageRejectsSelf() {
	req := dto.CreateMessageRequest{RecipientPublicKey: s.senderKey, Type: domain.MessageRequest}

	_, err := s.service.CreateMessage(s.ctx, req, s.senderKey)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *MessageServiceTestSuite) TestAcknowledgePendingMessage() {
	messageID := uuid.NewString()
	pending := domain.PaymentMessage{
		MessageID:          messageID,
		SenderPublicKey:    s.senderKey,
		RecipientPublicKey: s.recipientKey,
		Status:             domain.MessagePending,
	}

	s.mockMessageRepo.On("FindMessageByID", s.ctx, messageID).Return(&pending, nil)
	s.mockMessageRepo.On("UpdateMessageStatus", s.ctx, messageID, domain.MessageAcknowledged, s.recipientKey).Return(nil)

	msg, err := s.service.UpdateMessageStatus(s.ctx, messageID, domain.MessageAcknowledged, s.recipientKey)
	s.Require().NoError(err)
	s.Equal(domain.MessageAcknowledged, msg.Status)
}

func (s *MessageServiceTestSuite) TestOnlyRecipientMayTransition() {
	messageID := uuid.NewString()
	pending := domain.PaymentMessage{
		MessageID:          messageID,
		SenderPublicKey:    s.senderKey,
		RecipientPublicKey: s.recipientKey,
		Status:             domain.MessagePending,
	}

	s.mockMessageRepo.On("FindMessageByID", s.ctx, messageID).Return(&pending, nil)

	_, err := s.service.UpdateMessageStatus(s.ctx, messageID, domain.MessageAcknowledged, s.senderKey)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *MessageServiceTestSuite) TestAcknowledgedMessageIsTerminal() {
	messageID := uuid.NewString()
	done := domain.PaymentMessage{
		MessageID:          messageID,
		SenderPublicKey:    s.senderKey,
		RecipientPublicKey: s.recipientKey,
		Status:             domain.MessageAcknowledged,
	}

	s.mockMessageRepo.On("FindMessageByID", s.ctx, messageID).Return(&done, nil)

	_, err := s.service.UpdateMessageStatus(s.ctx, messageID, domain.MessageError, s.recipientKey)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockMessageRepo.AssertNotCalled(s.T(), "UpdateMessageStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMessageService(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}
