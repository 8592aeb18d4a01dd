package domain

// Role classifies a team member's standing. The first user to appear becomes
// KeyPerson; removal is a transition to Deleted, never a physical delete.
type Role string

const (
	RoleKeyPerson   Role = "KEY_PERSON"
	RoleLimitedUser Role = "LIMITED_USER"
	RoleManager     Role = "MANAGER"
	RoleAccountant  Role = "ACCOUNTANT"
	RoleStaff       Role = "STAFF"
	RoleViewer      Role = "VIEWER"
	RoleDeleted     Role = "DELETED"
)

// ValidRole reports whether r is a recognised role.
func ValidRole(r Role) bool {
	switch r {
	case RoleKeyPerson, RoleLimitedUser, RoleManager, RoleAccountant, RoleStaff, RoleViewer, RoleDeleted:
		return true
	}
	return false
}

// CanManageUsers reports whether a holder of this role may add or remove
// other team members.
func (r Role) CanManageUsers() bool {
	return r == RoleKeyPerson || r == RoleManager
}

// User represents a team member, identified by wallet public key.
type User struct {
	PublicKey string   `json:"publicKey"` // Primary Key
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	AuditRef  AuditRef `json:"auditRef"`
	AuditFields
}
