package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	"github.com/smallbooks/smallbooks_backend/internal/models"
	"github.com/smallbooks/smallbooks_backend/internal/utils/mapping"
)

type PgxFileRepository struct {
	pool *pgxpool.Pool
}

// newPgxFileRepository creates a new repository for invoice file metadata.
func newPgxFileRepository(pool *pgxpool.Pool) portsrepo.FileRepositoryFacade {
	return &PgxFileRepository{pool: pool}
}

var _ portsrepo.FileRepositoryFacade = (*PgxFileRepository)(nil)

// SaveFile inserts invoice metadata.
func (r *PgxFileRepository) SaveFile(ctx context.Context, file domain.InvoiceFile) error {
	modelFile := mapping.ToModelFile(file)

	query := `
		INSERT INTO invoice_files (hash, name, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		modelFile.Hash,
		modelFile.Name,
		modelFile.ContentType,
		modelFile.SizeBytes,
		modelFile.UploadedBy,
		modelFile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: file %s already exists", apperrors.ErrDuplicate, modelFile.Hash)
		}
		return fmt.Errorf("failed to save file %s: %w", modelFile.Hash, err)
	}
	return nil
}

// FindFileByHash retrieves invoice metadata by content hash.
func (r *PgxFileRepository) FindFileByHash(ctx context.Context, hash string) (*domain.InvoiceFile, error) {
	query := `
		SELECT hash, name, content_type, size_bytes, uploaded_by, created_at
		FROM invoice_files
		WHERE hash = $1;
	`
	var m models.InvoiceFile
	err := r.pool.QueryRow(ctx, query, hash).Scan(
		&m.Hash,
		&m.Name,
		&m.ContentType,
		&m.SizeBytes,
		&m.UploadedBy,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find file %s: %w", hash, err)
	}

	domainFile := mapping.ToDomainFile(m)
	return &domainFile, nil
}
