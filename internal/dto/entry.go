package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// EntryDateFormat is the wire format for entry dates (calendar date, no
// time-of-day).
const EntryDateFormat = "2006-01-02"

// PostEntryRequest defines the expected JSON body for posting a ledger entry.
type PostEntryRequest struct {
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	// Initial marks the opening entry of a brand-new account: the prior
	// balance is taken as zero without consulting the ledger.
	Initial bool `json:"initial"`
}

// EntryResponse defines the decrypted view of a posted entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	SequenceNo     int64           `json:"sequenceNo"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningTotal   decimal.Decimal `json:"runningTotal"`
	OwnerPublicKey string          `json:"ownerPublicKey"`
	AuditRef       domain.AuditRef `json:"auditRef"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LastEntryResponse carries the raw encrypted bag of the newest entry plus
// the account's basket, matching what the front end needs to display a
// balance without a full page load.
type LastEntryResponse struct {
	AccountID    string            `json:"accountID"`
	SequenceNo   int64             `json:"sequenceNo"`
	EncryptedBag string            `json:"encryptedData"`
	Basket       domain.BasketKind `json:"basket"`
	RunningTotal decimal.Decimal   `json:"runningTotal"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a decoded domain.AccountEntry to its DTO.
func ToEntryResponse(e *domain.AccountEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		SequenceNo:     e.SequenceNo,
		Date:           e.EntryDate.Format(EntryDateFormat),
		Description:    e.Fields.Description,
		Debit:          e.Fields.Debit,
		Credit:         e.Fields.Credit,
		RunningTotal:   e.Fields.RunningTotal,
		OwnerPublicKey: e.Fields.OwnerPublicKey,
		AuditRef:       e.AuditRef,
		CreatedAt:      e.CreatedAt,
	}
}
