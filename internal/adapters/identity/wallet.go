// Package identity adapts the external wallet service to the
// IdentityProvider port. The provider is injected into the services that
// need it rather than accessed globally.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// WalletIdentityProvider calls the wallet collaborator over HTTP.
type WalletIdentityProvider struct {
	baseURL string
	client  *http.Client
}

// NewWalletIdentityProvider creates a wallet client for the given base URL.
func NewWalletIdentityProvider(baseURL string) *WalletIdentityProvider {
	return &WalletIdentityProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.IdentityProvider = (*WalletIdentityProvider)(nil)

// GetPublicKey returns the server's own wallet identity key.
func (p *WalletIdentityProvider) GetPublicKey(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/getPublicKey", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build wallet request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wallet service returned status %d", resp.StatusCode)
	}

	var out struct {
		PublicKey string `json:"publicKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode wallet response: %w", err)
	}
	if out.PublicKey == "" {
		return "", fmt.Errorf("wallet service returned an empty public key")
	}
	return out.PublicKey, nil
}

// VerifySignature checks that signature over nonce was produced by the
// holder of publicKey. A non-error return means the signature is valid.
func (p *WalletIdentityProvider) VerifySignature(ctx context.Context, publicKey, nonce, signature string) error {
	body, err := json.Marshal(map[string]string{
		"publicKey": publicKey,
		"nonce":     nonce,
		"signature": signature,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/verifySignature", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build wallet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("wallet service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet service returned status %d", resp.StatusCode)
	}

	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode wallet response: %w", err)
	}
	if !out.Valid {
		return fmt.Errorf("signature is not valid for public key %s", publicKey)
	}
	return nil
}
