package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// ComputeRunningTotal derives the balance of an account immediately after an
// entry, from the balance immediately before it.
//
// Polarity convention:
//
//	ASSET/EXPENSE:      newTotal = prior + debit - credit
//	LIABILITY/INCOME:   newTotal = prior - debit + credit
//
// Callers must reject negative debit/credit before calling; the prior total
// of an empty ledger is zero. Getting the polarity backwards silently
// inverts every liability and income balance, so this stays in one place.
func ComputeRunningTotal(prior decimal.Decimal, basket domain.BasketKind, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch basket {
	case domain.Asset, domain.Expense:
		return prior.Add(debit).Sub(credit), nil
	case domain.Liability, domain.Income:
		return prior.Sub(debit).Add(credit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown basket kind '%s'", basket)
	}
}

// ValidateEntryAmounts enforces the entry-level amount contract: both sides
// non-negative, and exactly one of debit/credit non-zero. Double-entry
// convention treats an entry as either a debit or a credit, never both and
// never neither.
func ValidateEntryAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("debit and credit must be non-negative, got debit=%s credit=%s", debit.String(), credit.String())
	}
	debitUsed := debit.IsPositive()
	creditUsed := credit.IsPositive()
	if debitUsed == creditUsed {
		return fmt.Errorf("exactly one of debit or credit must be non-zero, got debit=%s credit=%s", debit.String(), credit.String())
	}
	return nil
}
