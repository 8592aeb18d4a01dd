package services

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

// UserSvcFacade defines team member management. The first user to appear is
// auto-assigned KEY_PERSON; removal is a soft transition to DELETED.
type UserSvcFacade interface {
	// BootstrapUser registers the first team member as KEY_PERSON. It is the
	// only unauthenticated write and refuses once any user row exists.
	BootstrapUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorPublicKey string) (*domain.User, error)
	GetUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error)
	ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error)
	UpdateUser(ctx context.Context, publicKey string, req dto.UpdateUserRequest, actorPublicKey string) (*domain.User, error)
	RemoveUser(ctx context.Context, publicKey string, actorPublicKey string) error
}
