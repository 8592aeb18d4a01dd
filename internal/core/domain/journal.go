package domain

import "time"

// GeneralJournalEntry mirrors an AccountEntry into the single cross-account
// journal used for consolidated audit and reporting. It carries the same
// encrypted bag plus the originating account's name, and is written in the
// same storage transaction as the entry it mirrors.
type GeneralJournalEntry struct {
	JournalEntryID string      `json:"journalEntryID"` // Primary Key (UUID)
	EntryID        string      `json:"entryID"`        // The mirrored account entry
	AccountID      string      `json:"accountID"`
	AccountName    string      `json:"accountName"`
	EntryDate      time.Time   `json:"entryDate"`
	Fields         EntryFields `json:"fields"`
	EncryptedBag   string      `json:"-"`
	AuditRef       AuditRef    `json:"auditRef"`
	CreatedAt      time.Time   `json:"createdAt"`
	CreatedBy      string      `json:"createdBy"`
}
