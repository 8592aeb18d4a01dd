package models

import "github.com/shopspring/decimal"

// PaymentMessage represents one payment message row.
type PaymentMessage struct {
	MessageID          string          `db:"message_id"`
	SenderPublicKey    string          `db:"sender_public_key"`
	RecipientPublicKey string          `db:"recipient_public_key"`
	MessageType        string          `db:"message_type"`
	Status             string          `db:"status"`
	Amount             decimal.Decimal `db:"amount"`
	Body               string          `db:"body"`
	AuditFields
}
