package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// CreateMessageRequest defines the expected JSON body for sending a payment
// message.
type CreateMessageRequest struct {
	RecipientPublicKey string             `json:"recipientPublicKey" binding:"required"`
	Type               domain.MessageType `json:"type" binding:"required"`
	Amount             decimal.Decimal    `json:"amount"`
	Body               string             `json:"body"`
}

// UpdateMessageStatusRequest defines the body for a status transition.
type UpdateMessageStatusRequest struct {
	Status domain.MessageStatus `json:"status" binding:"required"`
}

// MessageResponse defines the data returned for a payment message.
type MessageResponse struct {
	MessageID          string               `json:"messageID"`
	SenderPublicKey    string               `json:"senderPublicKey"`
	RecipientPublicKey string               `json:"recipientPublicKey"`
	Type               domain.MessageType   `json:"type"`
	Status             domain.MessageStatus `json:"status"`
	Amount             decimal.Decimal      `json:"amount"`
	Body               string               `json:"body"`
	CreatedAt          time.Time            `json:"createdAt"`
	LastUpdatedAt      time.Time            `json:"lastUpdatedAt"`
}

// ListMessagesParams defines query parameters for listing messages.
type ListMessagesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMessagesResponse wraps a page of messages.
type ListMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToMessageResponse converts a domain.PaymentMessage to MessageResponse DTO.
func ToMessageResponse(m *domain.PaymentMessage) MessageResponse {
	return MessageResponse{
		MessageID:          m.MessageID,
		SenderPublicKey:    m.SenderPublicKey,
		RecipientPublicKey: m.RecipientPublicKey,
		Type:               m.Type,
		Status:             m.Status,
		Amount:             m.Amount,
		Body:               m.Body,
		CreatedAt:          m.CreatedAt,
		LastUpdatedAt:      m.LastUpdatedAt,
	}
}
