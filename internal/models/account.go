package models

// BasketKind mirrors the domain classification that drives balance polarity.
type BasketKind string

// Account represents one ledger account row. EditRoles and ViewRoles are
// stored as text[] columns.
type Account struct {
	AccountID string     `db:"account_id"`
	Name      string     `db:"name"`
	Basket    BasketKind `db:"basket"`
	EditRoles []string   `db:"edit_roles"`
	ViewRoles []string   `db:"view_roles"`
	AuditFields
}
