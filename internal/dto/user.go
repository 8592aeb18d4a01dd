package dto

import (
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// CreateUserRequest defines the expected JSON body for adding a team member.
// Role is optional: the very first user is always made KEY_PERSON, later
// users default to LIMITED_USER.
type CreateUserRequest struct {
	PublicKey string      `json:"publicKey" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Role      domain.Role `json:"role"`
}

// UpdateUserRequest defines optional fields for updating a team member.
type UpdateUserRequest struct {
	Email *string      `json:"email,omitempty"`
	Role  *domain.Role `json:"role,omitempty"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	PublicKey string          `json:"publicKey"`
	Email     string          `json:"email"`
	Role      domain.Role     `json:"role"`
	AuditRef  domain.AuditRef `json:"auditRef"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		PublicKey: u.PublicKey,
		Email:     u.Email,
		Role:      u.Role,
		AuditRef:  u.AuditRef,
		CreatedAt: u.CreatedAt,
	}
}
