package services

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

// MessageSvcFacade defines payment message exchange between team members.
type MessageSvcFacade interface {
	CreateMessage(ctx context.Context, req dto.CreateMessageRequest, senderPublicKey string) (*domain.PaymentMessage, error)
	ListMessages(ctx context.Context, participantPublicKey string, params dto.ListMessagesParams) (*dto.ListMessagesResponse, error)
	UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, actorPublicKey string) (*domain.PaymentMessage, error)
}
