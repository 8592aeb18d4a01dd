package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		PublicKey:      d.PublicKey,
		Email:          d.Email,
		Role:           string(d.Role),
		AuditRefFields: ToModelAuditRef(d.AuditRef),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		PublicKey:   m.PublicKey,
		Email:       m.Email,
		Role:        domain.Role(m.Role),
		AuditRef:    ToDomainAuditRef(m.AuditRefFields),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
