package domain

// BasketKind is the four-way classification of an account that determines
// balance polarity: debits grow assets and expenses, credits grow
// liabilities and income.
type BasketKind string

const (
	Asset     BasketKind = "ASSET"
	Liability BasketKind = "LIABILITY"
	Income    BasketKind = "INCOME"
	Expense   BasketKind = "EXPENSE"
)

// ValidBasket reports whether b is one of the four recognised baskets.
func ValidBasket(b BasketKind) bool {
	switch b {
	case Asset, Liability, Income, Expense:
		return true
	}
	return false
}

// Account identifies one ledger account. Accounts are created once and are
// immutable thereafter except for entries appended to them; there is no
// delete operation (append-only ledger requirement).
type Account struct {
	AccountID string     `json:"accountID"` // Primary Key (UUID)
	Name      string     `json:"name"`      // Unique user-facing identifier
	Basket    BasketKind `json:"basket"`
	EditRoles []Role     `json:"editRoles"` // Roles allowed to post entries
	ViewRoles []Role     `json:"viewRoles"` // Roles allowed to read entries
	AuditFields
}

// RoleMayEdit reports whether the given role is in the account's edit set.
// KeyPerson always may.
func (a *Account) RoleMayEdit(r Role) bool {
	if r == RoleKeyPerson {
		return true
	}
	for _, allowed := range a.EditRoles {
		if allowed == r {
			return true
		}
	}
	return false
}

// RoleMayView reports whether the given role is in the account's view set.
// Edit permission implies view permission; KeyPerson always may.
func (a *Account) RoleMayView(r Role) bool {
	if a.RoleMayEdit(r) {
		return true
	}
	for _, allowed := range a.ViewRoles {
		if allowed == r {
			return true
		}
	}
	return false
}
