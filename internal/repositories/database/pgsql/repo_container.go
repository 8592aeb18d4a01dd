package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
		MessageRepo: newPgxMessageRepository(dbPool),
		FileRepo:    newPgxFileRepository(dbPool),
	}
}
