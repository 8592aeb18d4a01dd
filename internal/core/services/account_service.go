package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// accountService manages the chart of accounts. Accounts are permanent:
// created once, never updated or deleted, so their ledgers stay auditable.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, userRepo: userRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// defaultEditRoles and defaultViewRoles apply when a create request leaves
// the role sets empty.
var (
	defaultEditRoles = []domain.Role{domain.RoleManager, domain.RoleAccountant}
	defaultViewRoles = []domain.Role{domain.RoleManager, domain.RoleAccountant, domain.RoleStaff, domain.RoleViewer}
)

// CreateAccount creates a ledger account. Only the key person, managers and
// accountants may create accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorPublicKey string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	if !domain.ValidBasket(req.Basket) {
		return nil, fmt.Errorf("%w: unknown basket kind %q", apperrors.ErrValidation, req.Basket)
	}
	for _, r := range append(append([]domain.Role{}, req.EditRoles...), req.ViewRoles...) {
		if !domain.ValidRole(r) || r == domain.RoleDeleted {
			return nil, fmt.Errorf("%w: invalid role %q in permission set", apperrors.ErrValidation, r)
		}
	}

	actor, err := s.userRepo.FindUserByPublicKey(ctx, actorPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	switch actor.Role {
	case domain.RoleKeyPerson, domain.RoleManager, domain.RoleAccountant:
	default:
		return nil, fmt.Errorf("%w: role %s may not create accounts", apperrors.ErrForbidden, actor.Role)
	}

	if existing, err := s.accountRepo.FindAccountByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account %q already exists", apperrors.ErrDuplicate, name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account name %q: %w", name, err)
	}

	editRoles := req.EditRoles
	if len(editRoles) == 0 {
		editRoles = defaultEditRoles
	}
	viewRoles := req.ViewRoles
	if len(viewRoles) == 0 {
		viewRoles = defaultViewRoles
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		Basket:    req.Basket,
		EditRoles: editRoles,
		ViewRoles: viewRoles,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorPublicKey,
			LastUpdatedAt: now,
			LastUpdatedBy: actorPublicKey,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("name", name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("name", name))
	return &account, nil
}

// GetAccountByID fetches one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts returns a page of the chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
