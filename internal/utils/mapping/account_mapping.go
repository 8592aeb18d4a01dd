package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

func rolesToStrings(rs []domain.Role) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func stringsToRoles(ss []string) []domain.Role {
	out := make([]domain.Role, len(ss))
	for i, s := range ss {
		out[i] = domain.Role(s)
	}
	return out
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		Basket:      models.BasketKind(d.Basket),
		EditRoles:   rolesToStrings(d.EditRoles),
		ViewRoles:   rolesToStrings(d.ViewRoles),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		Basket:      domain.BasketKind(m.Basket),
		EditRoles:   stringsToRoles(m.EditRoles),
		ViewRoles:   stringsToRoles(m.ViewRoles),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
