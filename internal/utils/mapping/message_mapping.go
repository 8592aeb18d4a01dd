package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

// ToModelMessage converts a domain PaymentMessage to a model PaymentMessage
func ToModelMessage(d domain.PaymentMessage) models.PaymentMessage {
	return models.PaymentMessage{
		MessageID:          d.MessageID,
		SenderPublicKey:    d.SenderPublicKey,
		RecipientPublicKey: d.RecipientPublicKey,
		MessageType:        string(d.Type),
		Status:             string(d.Status),
		Amount:             d.Amount,
		Body:               d.Body,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMessage converts a model PaymentMessage to its domain form
func ToDomainMessage(m models.PaymentMessage) domain.PaymentMessage {
	return domain.PaymentMessage{
		MessageID:          m.MessageID,
		SenderPublicKey:    m.SenderPublicKey,
		RecipientPublicKey: m.RecipientPublicKey,
		Type:               domain.MessageType(m.MessageType),
		Status:             domain.MessageStatus(m.Status),
		Amount:             m.Amount,
		Body:               m.Body,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMessageSlice converts a slice of model messages to domain messages
func ToDomainMessageSlice(ms []models.PaymentMessage) []domain.PaymentMessage {
	ds := make([]domain.PaymentMessage, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMessage(m)
	}
	return ds
}
