package dto

import (
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
)

// FileResponse defines the metadata returned after an invoice upload.
type FileResponse struct {
	Hash        string    `json:"hash"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToFileResponse converts a domain.InvoiceFile to FileResponse DTO.
func ToFileResponse(f *domain.InvoiceFile) FileResponse {
	return FileResponse{
		Hash:        f.Hash,
		Name:        f.Name,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		UploadedBy:  f.UploadedBy,
		CreatedAt:   f.CreatedAt,
	}
}
