package ports

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// Cipher is the reversible encrypt/decrypt capability protecting entry field
// contents at rest. Implementations are keyed by an opaque identity key and
// protocol id fixed at construction.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// AuditService records an action with the external ledger-audit collaborator
// and returns an opaque reference to be stored verbatim alongside the entry.
type AuditService interface {
	CreateAction(ctx context.Context, description string, payload []byte) (domain.AuditRef, error)
}

// IdentityProvider abstracts the wallet SDK. It is injected wherever a
// caller's identity is needed, rather than reached for globally, so tests
// can substitute a deterministic fake.
type IdentityProvider interface {
	// GetPublicKey returns the public key of the server's own wallet identity.
	GetPublicKey(ctx context.Context) (string, error)
	// VerifySignature checks that signature over nonce was produced by the
	// holder of publicKey.
	VerifySignature(ctx context.Context, publicKey, nonce, signature string) error
}

// BlobStore is an opaque content-addressable blob store for invoice files.
type BlobStore interface {
	// Publish stores data and returns its content hash.
	Publish(ctx context.Context, data []byte) (string, error)
	// Download retrieves the blob previously stored under hash.
	Download(ctx context.Context, hash string) ([]byte, error)
}

// EventPublisher emits best-effort notifications about ledger activity.
// Publish failures are logged by callers and never fail the request.
type EventPublisher interface {
	EntryPosted(ctx context.Context, accountID, accountName, entryID string) error
	PaymentMessageCreated(ctx context.Context, messageID, recipientPublicKey string) error
}
