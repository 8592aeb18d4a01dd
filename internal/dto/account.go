package dto

import (
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Name      string            `json:"name" binding:"required"`
	Basket    domain.BasketKind `json:"basket" binding:"required"`
	EditRoles []domain.Role     `json:"editRoles"`
	ViewRoles []domain.Role     `json:"viewRoles"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string            `json:"accountID"`
	Name      string            `json:"name"`
	Basket    domain.BasketKind `json:"basket"`
	EditRoles []domain.Role     `json:"editRoles"`
	ViewRoles []domain.Role     `json:"viewRoles"`
	CreatedAt time.Time         `json:"createdAt"`
	CreatedBy string            `json:"createdBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		Basket:    a.Basket,
		EditRoles: a.EditRoles,
		ViewRoles: a.ViewRoles,
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
	}
}
