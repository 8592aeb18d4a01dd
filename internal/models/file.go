package models

import "time"

// InvoiceFile represents invoice metadata; the bytes live in the blob store.
type InvoiceFile struct {
	Hash        string    `db:"hash"`
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	UploadedBy  string    `db:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at"`
}
