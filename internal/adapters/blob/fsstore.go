// Package blob implements the content-addressable store for invoice files.
// Blobs are keyed by the SHA-256 of their contents, so identical uploads
// land on the same key and storage is naturally deduplicated.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// FSStore keeps blobs on the local filesystem, sharded by the first two hex
// characters of the hash to keep directories small.
type FSStore struct {
	root string
}

// NewFSStore creates the store rooted at dir, creating it if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob store root %s: %w", dir, err)
	}
	return &FSStore{root: dir}, nil
}

var _ ports.BlobStore = (*FSStore)(nil)

func (s *FSStore) pathFor(hash string) string {
	return filepath.Join(s.root, hash[:2], hash)
}

// Publish stores data under its SHA-256 hash and returns the hash in hex.
// Publishing the same bytes twice is a no-op.
func (s *FSStore) Publish(_ context.Context, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	path := s.pathFor(hash)

	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob shard dir: %w", err)
	}

	// Write to a temp file, then rename: readers never see partial blobs.
	tmp, err := os.CreateTemp(filepath.Dir(path), "incoming-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp blob file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close blob file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize blob file: %w", err)
	}

	return hash, nil
}

// Download retrieves the blob stored under hash.
func (s *FSStore) Download(_ context.Context, hash string) ([]byte, error) {
	if len(hash) != 64 {
		return nil, fmt.Errorf("%w: malformed blob hash %q", apperrors.ErrValidation, hash)
	}

	data, err := os.ReadFile(s.pathFor(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: blob %s", apperrors.ErrNotFound, hash)
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	return data, nil
}
