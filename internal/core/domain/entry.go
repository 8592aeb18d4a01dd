package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFields are the sensitive fields of an account entry. At rest they
// live encrypted inside a single serialized bag; in memory they are plain.
type EntryFields struct {
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningTotal   decimal.Decimal `json:"runningTotal"`
	OwnerPublicKey string          `json:"ownerPublicKey"`
}

// AccountEntry is one posted line in an account's ledger. Entries form an
// append-only sequence per account ordered by SequenceNo; each entry's
// running total equals the previous entry's running total combined with this
// entry's debit/credit per the account's basket polarity. Entries are never
// mutated or deleted once created.
type AccountEntry struct {
	EntryID      string      `json:"entryID"` // Primary Key (UUID)
	AccountID    string      `json:"accountID"`
	SequenceNo   int64       `json:"sequenceNo"` // 1-based, monotonic per account
	EntryDate    time.Time   `json:"entryDate"`  // Calendar date, no time-of-day
	Fields       EntryFields `json:"fields"`     // Decrypted view; empty when undecoded
	EncryptedBag string      `json:"-"`          // Serialized encrypted field bag
	AuditRef     AuditRef    `json:"auditRef"`
	CreatedAt    time.Time   `json:"createdAt"`
	CreatedBy    string      `json:"createdBy"`
}
