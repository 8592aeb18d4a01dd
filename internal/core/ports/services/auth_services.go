package services

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/dto"
)

// AuthSvcFacade defines wallet-based authentication: the caller proves
// control of a public key and receives a bearer token.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// ServerIdentity returns the public key of the server's own wallet, so
	// clients can address encrypted payloads to it and verify provenance.
	ServerIdentity(ctx context.Context) (string, error)
}
