package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// maxInvoiceBytes caps uploads at 10 MiB.
const maxInvoiceBytes = 10 << 20

// fileService stores invoice documents in the content-addressable blob
// store and keeps their metadata in the database.
type fileService struct {
	fileRepo portsrepo.FileRepositoryFacade
	blobs    ports.BlobStore
}

// NewFileService creates a new FileService.
func NewFileService(fileRepo portsrepo.FileRepositoryFacade, blobs ports.BlobStore) portssvc.FileSvcFacade {
	return &fileService{fileRepo: fileRepo, blobs: blobs}
}

var _ portssvc.FileSvcFacade = (*fileService)(nil)

// Upload publishes the invoice bytes to the blob store and records the
// metadata. Re-uploading identical bytes returns the existing record.
func (s *fileService) Upload(ctx context.Context, name, contentType string, data []byte, uploaderPublicKey string) (*domain.InvoiceFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrValidation)
	}
	if len(data) > maxInvoiceBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", apperrors.ErrValidation, maxInvoiceBytes)
	}

	hash, err := s.blobs.Publish(ctx, data)
	if err != nil {
		logger.Error("Failed to publish blob", slog.String("name", name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store file contents: %w", err)
	}

	// Content addressing makes re-uploads idempotent.
	if existing, err := s.fileRepo.FindFileByHash(ctx, hash); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing file: %w", err)
	}

	file := domain.InvoiceFile{
		Hash:        hash,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		UploadedBy:  uploaderPublicKey,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.fileRepo.SaveFile(ctx, file); err != nil {
		logger.Error("Failed to save file metadata", slog.String("hash", hash), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}

	logger.Info("Invoice uploaded", slog.String("hash", hash), slog.Int64("size_bytes", file.SizeBytes))
	return &file, nil
}

// Download returns the metadata and bytes of a stored invoice.
func (s *fileService) Download(ctx context.Context, hash string) (*domain.InvoiceFile, []byte, error) {
	file, err := s.fileRepo.FindFileByHash(ctx, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch file %s: %w", hash, err)
	}

	data, err := s.blobs.Download(ctx, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch file contents %s: %w", hash, err)
	}
	return file, data, nil
}
