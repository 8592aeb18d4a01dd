package audit

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// NoopAuditService returns empty references. Used in local development when
// no audit collaborator is configured.
type NoopAuditService struct{}

var _ ports.AuditService = (*NoopAuditService)(nil)

func (NoopAuditService) CreateAction(context.Context, string, []byte) (domain.AuditRef, error) {
	return domain.AuditRef{}, nil
}
