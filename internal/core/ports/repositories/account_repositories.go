package repositories

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for ledger accounts.
// Accounts are append-only: there is no update or delete.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}
