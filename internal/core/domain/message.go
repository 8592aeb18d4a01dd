package domain

import "github.com/shopspring/decimal"

// MessageType classifies a payment message exchanged between two users.
type MessageType string

const (
	MessageRequest      MessageType = "REQUEST"
	MessageApproval     MessageType = "APPROVAL"
	MessageNotification MessageType = "NOTIFICATION"
	MessagePayment      MessageType = "PAYMENT"
)

// ValidMessageType reports whether t is a recognised message type.
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageRequest, MessageApproval, MessageNotification, MessagePayment:
		return true
	}
	return false
}

// MessageStatus is the lifecycle state of a payment message.
type MessageStatus string

const (
	MessagePending      MessageStatus = "PENDING"
	MessageAcknowledged MessageStatus = "ACKNOWLEDGED"
	MessageError        MessageStatus = "ERROR"
)

// ValidStatusTransition reports whether a message may move from one status
// to another. Messages are append-only except for this transition: only
// PENDING messages may be acknowledged or marked errored.
func ValidStatusTransition(from, to MessageStatus) bool {
	return from == MessagePending && (to == MessageAcknowledged || to == MessageError)
}

// PaymentMessage is a request/approval/notification exchanged between two
// users identified by public key.
type PaymentMessage struct {
	MessageID          string          `json:"messageID"` // Primary Key (UUID)
	SenderPublicKey    string          `json:"senderPublicKey"`
	RecipientPublicKey string          `json:"recipientPublicKey"`
	Type               MessageType     `json:"type"`
	Status             MessageStatus   `json:"status"`
	Amount             decimal.Decimal `json:"amount"`
	Body               string          `json:"body"`
	AuditFields
}
