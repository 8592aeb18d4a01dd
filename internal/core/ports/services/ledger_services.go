package services

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

// LedgerSvcFacade defines the entry-posting and read-side ledger operations.
type LedgerSvcFacade interface {
	// PostEntry appends an entry to an account's ledger: it derives the new
	// running total from the previous entry, encrypts the sensitive fields,
	// obtains an external audit record, and persists the entry together
	// with its general-journal mirror. When req.Initial is set the prior
	// balance is taken as zero without consulting the ledger.
	PostEntry(ctx context.Context, accountID string, req dto.PostEntryRequest, actorPublicKey string) (*domain.AccountEntry, error)

	GetLastEntry(ctx context.Context, accountID string, actorPublicKey string) (*dto.LastEntryResponse, error)
	ListEntries(ctx context.Context, accountID string, params dto.ListEntriesParams, actorPublicKey string) (*dto.ListEntriesResponse, error)
	ListGeneralJournal(ctx context.Context, params dto.ListGeneralJournalParams, actorPublicKey string) (*dto.ListGeneralJournalResponse, error)
}
