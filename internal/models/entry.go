package models

import "time"

// AccountEntry represents one row of an account's ledger. The sensitive
// fields travel only inside EncryptedBag; the row itself carries just the
// ordering and audit columns.
type AccountEntry struct {
	EntryID      string    `db:"entry_id"`
	AccountID    string    `db:"account_id"`
	SequenceNo   int64     `db:"sequence_no"`
	EntryDate    time.Time `db:"entry_date"`
	EncryptedBag string    `db:"encrypted_bag"`
	CreatedAt    time.Time `db:"created_at"`
	CreatedBy    string    `db:"created_by"`
	AuditRefFields
}

// GeneralJournalEntry represents one row of the cross-account journal
// mirror. It duplicates the account name so journal pages render without a
// join.
type GeneralJournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id"`
	EntryID        string    `db:"entry_id"`
	AccountID      string    `db:"account_id"`
	AccountName    string    `db:"account_name"`
	EntryDate      time.Time `db:"entry_date"`
	EncryptedBag   string    `db:"encrypted_bag"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
	AuditRefFields
}
