package repositories

import (
	"context"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// FileRepositoryFacade defines persistence operations for invoice file
// metadata. The file bytes themselves live in the blob store.
type FileRepositoryFacade interface {
	SaveFile(ctx context.Context, file domain.InvoiceFile) error
	FindFileByHash(ctx context.Context, hash string) (*domain.InvoiceFile, error)
}
