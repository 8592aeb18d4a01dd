package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

// ToModelEntry converts a domain AccountEntry to a model AccountEntry.
// The decoded Fields never reach the row; only the encrypted bag is stored.
func ToModelEntry(d domain.AccountEntry) models.AccountEntry {
	return models.AccountEntry{
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		SequenceNo:     d.SequenceNo,
		EntryDate:      d.EntryDate,
		EncryptedBag:   d.EncryptedBag,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
		AuditRefFields: ToModelAuditRef(d.AuditRef),
	}
}

// ToDomainEntry converts a model AccountEntry to a domain AccountEntry.
// Fields is left zero; decoding happens in the service layer.
func ToDomainEntry(m models.AccountEntry) domain.AccountEntry {
	return domain.AccountEntry{
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		SequenceNo:   m.SequenceNo,
		EntryDate:    m.EntryDate,
		EncryptedBag: m.EncryptedBag,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
		AuditRef:     ToDomainAuditRef(m.AuditRefFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries
func ToDomainEntrySlice(ms []models.AccountEntry) []domain.AccountEntry {
	ds := make([]domain.AccountEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToModelJournalEntry converts a domain GeneralJournalEntry to its model
func ToModelJournalEntry(d domain.GeneralJournalEntry) models.GeneralJournalEntry {
	return models.GeneralJournalEntry{
		JournalEntryID: d.JournalEntryID,
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		AccountName:    d.AccountName,
		EntryDate:      d.EntryDate,
		EncryptedBag:   d.EncryptedBag,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
		AuditRefFields: ToModelAuditRef(d.AuditRef),
	}
}

// ToDomainJournalEntry converts a model GeneralJournalEntry to its domain form
func ToDomainJournalEntry(m models.GeneralJournalEntry) domain.GeneralJournalEntry {
	return domain.GeneralJournalEntry{
		JournalEntryID: m.JournalEntryID,
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		EntryDate:      m.EntryDate,
		EncryptedBag:   m.EncryptedBag,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
		AuditRef:       ToDomainAuditRef(m.AuditRefFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model journal entries
func ToDomainJournalEntrySlice(ms []models.GeneralJournalEntry) []domain.GeneralJournalEntry {
	ds := make([]domain.GeneralJournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
