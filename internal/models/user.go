package models

// User represents a team member row, keyed by wallet public key.
type User struct {
	PublicKey string `db:"public_key"`
	Email     string `db:"email"`
	Role      string `db:"role"`
	AuditRefFields
	AuditFields
}
