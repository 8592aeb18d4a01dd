package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

// BudgetSvcFacade defines the read-side aggregations over an account's
// decoded history. All operations decode every historical entry (no
// caching); callers needing efficiency cache per account per session.
type BudgetSvcFacade interface {
	// RunningTotal returns the balance after the account's newest entry,
	// zero for an empty ledger.
	RunningTotal(ctx context.Context, accountID string) (decimal.Decimal, error)
	// AccountAverage returns runningTotal / distinct-month-count, zero when
	// the account has entries in zero distinct months.
	AccountAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error)
	// LiabilityAverage returns sum(debit-credit) / distinct-month-count,
	// zero when the account has entries in zero distinct months.
	LiabilityAverage(ctx context.Context, accountID string) (*dto.AverageResponse, error)
	// MonthlyProjection is a pure fold producing exactly req.Months rows.
	MonthlyProjection(req dto.ProjectionRequest) *dto.ProjectionResponse
}
