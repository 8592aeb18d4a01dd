package repositories

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// MessageRepositoryFacade defines persistence operations for payment
// messages. Messages are append-only except for status transitions.
type MessageRepositoryFacade interface {
	SaveMessage(ctx context.Context, message domain.PaymentMessage) error
	FindMessageByID(ctx context.Context, messageID string) (*domain.PaymentMessage, error)
	// ListMessagesByParticipant returns messages where publicKey is sender
	// or recipient, newest first.
	ListMessagesByParticipant(ctx context.Context, publicKey string, limit int, nextToken *string) ([]domain.PaymentMessage, *string, error)
	UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, updatedBy string) error
}
