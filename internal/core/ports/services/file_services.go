package services

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// FileSvcFacade defines invoice file upload and retrieval through the
// content-addressable blob store.
type FileSvcFacade interface {
	Upload(ctx context.Context, name, contentType string, data []byte, uploaderPublicKey string) (*domain.InvoiceFile, error)
	Download(ctx context.Context, hash string) (*domain.InvoiceFile, []byte, error)
}
