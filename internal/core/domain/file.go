package domain

import "time"

// InvoiceFile is the metadata row for an uploaded invoice document. The
// bytes themselves live in the content-addressable blob store under Hash.
type InvoiceFile struct {
	Hash        string    `json:"hash"` // Primary Key: SHA-256 of contents, hex
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedBy  string    `json:"uploadedBy"` // Public key of the uploader
	CreatedAt   time.Time `json:"createdAt"`
}
