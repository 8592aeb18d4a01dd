package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/utils/entrycodec"
)

// budgetService computes read-side aggregations over decoded ledger history.
// Every call decodes the entries it needs; nothing is cached server-side.
type budgetService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	cipher      ports.Cipher
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	cipher ports.Cipher,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		cipher:      cipher,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// RunningTotal returns the balance after the account's newest entry. An
// empty ledger yields zero, not an error.
func (s *budgetService) RunningTotal(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	lastEntry, err := s.ledgerRepo.FindLastEntry(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to fetch last entry for account %s: %w", accountID, err)
	}

	fields := entrycodec.Decode(ctx, s.cipher, lastEntry.EncryptedBag)
	return fields.RunningTotal, nil
}

// distinctMonths counts the distinct calendar months (year+month pairs)
// covered by the entries' dates.
func distinctMonths(entries []domain.AccountEntry) int {
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		seen[entries[i].EntryDate.Format("2006-01")] = struct{}{}
	}
	return len(seen)
}

// AccountAverage returns runningTotal divided by the number of distinct
// months the account has entries in. Zero months yields a zero average.
func (s *budgetService) AccountAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	entries, err := s.ledgerRepo.ListAllEntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	months := distinctMonths(entries)
	if months == 0 {
		return &dto.AverageResponse{AccountID: accountID, Months: 0, Average: decimal.Zero}, nil
	}

	// The newest entry already carries the cumulative total.
	last := entries[len(entries)-1]
	total := entrycodec.Decode(ctx, s.cipher, last.EncryptedBag).RunningTotal

	return &dto.AverageResponse{
		AccountID: accountID,
		Months:    months,
		Average:   total.Div(decimal.NewFromInt(int64(months))),
	}, nil
}

// LiabilityAverage returns sum(debit - credit) divided by the number of
// distinct months. The raw debit-minus-credit sum is used regardless of the
// account's basket polarity, so on a liability account a negative result
// means the balance grew. Zero months yields a zero average.
func (s *budgetService) LiabilityAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	entries, err := s.ledgerRepo.ListAllEntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	months := distinctMonths(entries)
	if months == 0 {
		return &dto.AverageResponse{AccountID: accountID, Months: 0, Average: decimal.Zero}, nil
	}

	sum := decimal.Zero
	for i := range entries {
		fields := entrycodec.Decode(ctx, s.cipher, entries[i].EncryptedBag)
		sum = sum.Add(fields.Debit).Sub(fields.Credit)
	}

	return &dto.AverageResponse{
		AccountID: accountID,
		Months:    months,
		Average:   sum.Div(decimal.NewFromInt(int64(months))),
	}, nil
}

// MonthlyProjection folds a starting asset figure through req.Months months
// of fixed income and expenses. Months are numbered from 1; each month's
// starting value is the previous month's remaining value. Pure computation,
// no storage involved.
func (s *budgetService) MonthlyProjection(req dto.ProjectionRequest) *dto.ProjectionResponse {
	months := make([]dto.ProjectionMonth, 0, req.Months)
	carry := req.StartingAssets
	for m := 1; m <= req.Months; m++ {
		remaining := carry.Sub(req.MonthlyExpenseTotal).Add(req.MonthlyIncomeTotal)
		months = append(months, dto.ProjectionMonth{
			Month:         m,
			StartingValue: carry,
			TotalExpenses: req.MonthlyExpenseTotal,
			TotalIncome:   req.MonthlyIncomeTotal,
			Remaining:     remaining,
		})
		carry = remaining
	}
	return &dto.ProjectionResponse{Months: months}
}
