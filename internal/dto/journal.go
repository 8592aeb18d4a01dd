package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// GeneralJournalEntryResponse is the decrypted view of one general-journal row.
type GeneralJournalEntryResponse struct {
	JournalEntryID string          `json:"journalEntryID"`
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningTotal   decimal.Decimal `json:"runningTotal"`
	OwnerPublicKey string          `json:"ownerPublicKey"`
	AuditRef       domain.AuditRef `json:"auditRef"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListGeneralJournalParams defines query parameters for listing the journal.
type ListGeneralJournalParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListGeneralJournalResponse wraps a page of general-journal rows.
type ListGeneralJournalResponse struct {
	Entries   []GeneralJournalEntryResponse `json:"entries"`
	NextToken *string                       `json:"nextToken,omitempty"`
}

// ToGeneralJournalEntryResponse converts a decoded mirror row to its DTO.
func ToGeneralJournalEntryResponse(e *domain.GeneralJournalEntry) GeneralJournalEntryResponse {
	return GeneralJournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		AccountName:    e.AccountName,
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
