package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// messageService handles payment messages between team members.
type messageService struct {
	messageRepo portsrepo.MessageRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	events      ports.EventPublisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageRepo portsrepo.MessageRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	events ports.EventPublisher,
) portssvc.MessageSvcFacade {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo, events: events}
}

var _ portssvc.MessageSvcFacade = (*messageService)(nil)

// CreateMessage sends a payment message. New messages always start PENDING.
func (s *messageService) CreateMessage(ctx context.Context, req dto.CreateMessageRequest, senderPublicKey string) (*domain.PaymentMessage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidMessageType(req.Type) {
		return nil, fmt.Errorf("%w: unknown message type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if req.RecipientPublicKey == senderPublicKey {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", apperrors.ErrValidation)
	}

	recipient, err := s.userRepo.FindUserByPublicKey(ctx, req.RecipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipient %s: %w", req.RecipientPublicKey, err)
	}
	if recipient.Role == domain.RoleDeleted {
		return nil, fmt.Errorf("%w: recipient has been removed", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	message := domain.PaymentMessage{
		MessageID:          uuid.NewString(),
		SenderPublicKey:    senderPublicKey,
		RecipientPublicKey: req.RecipientPublicKey,
		Type:               req.Type,
		Status:             domain.MessagePending,
		Amount:             req.Amount,
		Body:               req.Body,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     senderPublicKey,
			LastUpdatedAt: now,
			LastUpdatedBy: senderPublicKey,
		},
	}

	if err := s.messageRepo.SaveMessage(ctx, message); err != nil {
		logger.Error("Failed to save message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	// Best effort notification; never fails the send.
	if err := s.events.PaymentMessageCreated(ctx, message.MessageID, message.RecipientPublicKey); err != nil {
		logger.Warn("Failed to publish message-created event", slog.String("message_id", message.MessageID), slog.String("error", err.Error()))
	}

	logger.Info("Message created", slog.String("message_id", message.MessageID), slog.String("type", string(message.Type)))
	return &message, nil
}

// ListMessages returns the messages the caller sent or received.
func (s *messageService) ListMessages(ctx context.Context, participantPublicKey string, params dto.ListMessagesParams) (*dto.ListMessagesResponse, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}

	messages, nextToken, err := s.messageRepo.ListMessagesByParticipant(ctx, participantPublicKey, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = dto.ToMessageResponse(&messages[i])
	}
	return &dto.ListMessagesResponse{Messages: responses, NextToken: nextToken}, nil
}

// UpdateMessageStatus moves a PENDING message to ACKNOWLEDGED or ERROR.
// Only the recipient may transition a message.
func (s *messageService) UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, actorPublicKey string) (*domain.PaymentMessage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	message, err := s.messageRepo.FindMessageByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	if message.RecipientPublicKey != actorPublicKey {
		return nil, fmt.Errorf("%w: only the recipient may update a message's status", apperrors.ErrForbidden)
	}
	if !domain.ValidStatusTransition(message.Status, status) {
		return nil, fmt.Errorf("%w: cannot move message from %s to %s", apperrors.ErrConflict, message.Status, status)
	}

	if err := s.messageRepo.UpdateMessageStatus(ctx, messageID, status, actorPublicKey); err != nil {
		logger.Error("Failed to update message status", slog.String("message_id", messageID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}

	message.Status = status
	message.LastUpdatedAt = time.Now().UTC()
	message.LastUpdatedBy = actorPublicKey
	return message, nil
}
