package services

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
)

// Collaborators bundles the external service adapters the services depend
// on. All of them are consumed through their port interfaces so tests can
// substitute fakes.
type Collaborators struct {
	Cipher   ports.Cipher
	Audit    ports.AuditService
	Identity ports.IdentityProvider
	Blobs    ports.BlobStore
	Events   ports.EventPublisher
}

// NewServiceContainer wires every service with its repositories and
// collaborators.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, collab Collaborators, authCfg AuthConfig) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, repos.UserRepo),
		Ledger:  NewLedgerService(repos.AccountRepo, repos.LedgerRepo, repos.UserRepo, collab.Cipher, collab.Audit, collab.Events),
		Budget:  NewBudgetService(repos.AccountRepo, repos.LedgerRepo, collab.Cipher),
		User:    NewUserService(repos.UserRepo, collab.Audit),
		Message: NewMessageService(repos.MessageRepo, repos.UserRepo, collab.Events),
		File:    NewFileService(repos.FileRepo, collab.Blobs),
		Auth:    NewAuthService(repos.UserRepo, collab.Identity, authCfg),
	}
}
