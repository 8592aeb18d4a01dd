package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// userService manages team membership. The first user registered becomes
// the key person; removal is a soft transition to the DELETED role.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	audit    ports.AuditService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, audit ports.AuditService) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, audit: audit}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// BootstrapUser registers the first team member over the public bootstrap
// route. It only works while the users table is truly empty (removed members
// still count) and the new user always becomes KEY_PERSON regardless of the
// requested role.
func (s *userService) BootstrapUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: team already initialised", apperrors.ErrConflict)
	}

	// The first user is their own creator.
	user, err := s.insertUser(ctx, req.PublicKey, req.Email, domain.RoleKeyPerson, req.PublicKey, "bootstrap key person")
	if err != nil {
		return nil, err
	}

	logger.Info("Key person bootstrapped", slog.String("public_key", user.PublicKey))
	return user, nil
}

// CreateUser adds a team member. Only the key person and managers may add
// users; the first member of an empty team comes in through BootstrapUser
// instead.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorPublicKey string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByPublicKey(ctx, actorPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if !actor.Role.CanManageUsers() {
		return nil, fmt.Errorf("%w: role %s may not add users", apperrors.ErrForbidden, actor.Role)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleLimitedUser
	}
	if !domain.ValidRole(role) || role == domain.RoleDeleted {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}

	user, err := s.insertUser(ctx, req.PublicKey, req.Email, role, actorPublicKey, "add team member")
	if err != nil {
		return nil, err
	}

	logger.Info("User created", slog.String("public_key", user.PublicKey), slog.String("role", string(user.Role)))
	return user, nil
}

// insertUser performs the duplicate check, the audit call and the save
// shared by BootstrapUser and CreateUser.
func (s *userService) insertUser(ctx context.Context, publicKey, email string, role domain.Role, createdBy, auditDescription string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.userRepo.FindUserByPublicKey(ctx, publicKey); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, publicKey)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	auditPayload, _ := json.Marshal(map[string]string{"email": email, "role": string(role)})
	auditRef, err := s.audit.CreateAction(ctx, auditDescription, auditPayload)
	if err != nil {
		logger.Error("Audit service call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create audit record: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		PublicKey: publicKey,
		Email:     email,
		Role:      role,
		AuditRef:  auditRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("public_key", publicKey), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

// GetUserByPublicKey fetches one team member.
func (s *userService) GetUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPublicKey(ctx, publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", publicKey, err)
	}
	return user, nil
}

// ListUsers returns the team, optionally including removed members.
func (s *userService) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a member's email or role. Only the key person and
// managers may update; the key person's own role cannot be changed here.
func (s *userService) UpdateUser(ctx context.Context, publicKey string, req dto.UpdateUserRequest, actorPublicKey string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByPublicKey(ctx, actorPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if !actor.Role.CanManageUsers() {
		return nil, fmt.Errorf("%w: role %s may not update users", apperrors.ErrForbidden, actor.Role)
	}

	user, err := s.userRepo.FindUserByPublicKey(ctx, publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", publicKey, err)
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		newRole := *req.Role
		if !domain.ValidRole(newRole) || newRole == domain.RoleDeleted {
			return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, newRole)
		}
		if user.Role == domain.RoleKeyPerson && newRole != domain.RoleKeyPerson {
			return nil, fmt.Errorf("%w: the key person's role cannot be reassigned", apperrors.ErrConflict)
		}
		user.Role = newRole
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actorPublicKey

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("public_key", publicKey), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// RemoveUser soft-deletes a member by moving them to the DELETED role. The
// row stays so that historical entries keep a resolvable author.
func (s *userService) RemoveUser(ctx context.Context, publicKey string, actorPublicKey string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByPublicKey(ctx, actorPublicKey)
	if err != nil {
		return fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if !actor.Role.CanManageUsers() {
		return fmt.Errorf("%w: role %s may not remove users", apperrors.ErrForbidden, actor.Role)
	}

	user, err := s.userRepo.FindUserByPublicKey(ctx, publicKey)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", publicKey, err)
	}
	if user.Role == domain.RoleDeleted {
		return fmt.Errorf("%w: user %s is already removed", apperrors.ErrConflict, publicKey)
	}
	if user.Role == domain.RoleKeyPerson {
		return fmt.Errorf("%w: the key person cannot be removed", apperrors.ErrConflict)
	}

	user.Role = domain.RoleDeleted
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actorPublicKey

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to remove user", slog.String("public_key", publicKey), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove user: %w", err)
	}

	logger.Info("User removed", slog.String("public_key", publicKey))
	return nil
}
