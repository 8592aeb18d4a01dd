package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

// ToModelFile converts a domain InvoiceFile to a model InvoiceFile
func ToModelFile(d domain.InvoiceFile) models.InvoiceFile {
	return models.InvoiceFile{
		Hash:        d.Hash,
		Name:        d.Name,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainFile converts a model InvoiceFile to its domain form
func ToDomainFile(m models.InvoiceFile) domain.InvoiceFile {
	return domain.InvoiceFile{
		Hash:        m.Hash,
		Name:        m.Name,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}
