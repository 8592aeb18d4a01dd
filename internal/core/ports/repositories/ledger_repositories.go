package repositories

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// LedgerRepositoryFacade defines persistence operations for account entries
// and their general-journal mirrors. Both tables belong to one ledger, so a
// single repository owns them: SaveEntry must write the entry and its mirror
// in the same storage transaction.
type LedgerRepositoryFacade interface {
	// SaveEntry persists an account entry and its general-journal mirror
	// atomically. A sequence collision on (account_id, sequence_no) returns
	// an error matching apperrors.ErrConflict.
	SaveEntry(ctx context.Context, entry domain.AccountEntry, mirror domain.GeneralJournalEntry) error

	// FindLastEntry returns the highest-sequence entry for the account, or
	// apperrors.ErrNotFound when the ledger is empty.
	FindLastEntry(ctx context.Context, accountID string) (*domain.AccountEntry, error)

	// ListEntriesByAccount returns a page of entries in insertion order,
	// plus a token for the next page when more remain.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountEntry, *string, error)

	// ListAllEntriesByAccount returns every entry for the account in
	// insertion order. Used by the budget aggregator, which must decode the
	// full history.
	ListAllEntriesByAccount(ctx context.Context, accountID string) ([]domain.AccountEntry, error)

	// ListGeneralJournal returns a page of the cross-account journal,
	// newest first.
	ListGeneralJournal(ctx context.Context, limit int, nextToken *string) ([]domain.GeneralJournalEntry, *string, error)
}
