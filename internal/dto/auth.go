package dto

import "time"

// LoginRequest carries a wallet-signed login challenge. The front end asks
// its wallet SDK to sign the nonce; the server verifies through the
// identity provider and issues a JWT whose subject is the public key.
type LoginRequest struct {
	PublicKey string `json:"publicKey" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ServerIdentityResponse carries the server wallet's public key.
type ServerIdentityResponse struct {
	PublicKey string `json:"publicKey"`
}
