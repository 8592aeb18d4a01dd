package repositories

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for team members.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error)
	ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error)
	// UpdateUser persists role and email changes. Soft removal is an
	// UpdateUser to role DELETED; rows are never physically deleted.
	UpdateUser(ctx context.Context, user domain.User) error
	CountUsers(ctx context.Context) (int64, error)
}
