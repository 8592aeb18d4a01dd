package dto

import "github.com/shopspring/decimal"

// RunningTotalResponse carries an account's current balance.
type RunningTotalResponse struct {
	AccountID    string          `json:"accountID"`
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// AverageResponse carries a per-month average for an account.
type AverageResponse struct {
	AccountID string          `json:"accountID"`
	Months    int             `json:"months"`
	Average   decimal.Decimal `json:"average"`
}

// ProjectionRequest defines the input to a monthly budget projection.
type ProjectionRequest struct {
	Months              int             `json:"months" binding:"required,gt=0"`
	StartingAssets      decimal.Decimal `json:"startingAssets"`
	MonthlyExpenseTotal decimal.Decimal `json:"monthlyExpenseTotal"`
	MonthlyIncomeTotal  decimal.Decimal `json:"monthlyIncomeTotal"`
}

// ProjectionMonth is one row of a projection: month numbers are 1-based.
type ProjectionMonth struct {
	Month         int             `json:"month"`
	StartingValue decimal.Decimal `json:"startingValue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// ProjectionResponse wraps the full projection.
type ProjectionResponse struct {
	Months []ProjectionMonth `json:"months"`
}
