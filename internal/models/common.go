package models

import "time"

// AuditFields contains common fields for tracking creation and last update.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// AuditRefFields are the flattened columns of an external audit record
// reference. All columns are nullable-as-empty: a zero reference means the
// row predates audit integration.
type AuditRefFields struct {
	AuditTxid         string `db:"audit_txid"`
	AuditRawTx        string `db:"audit_raw_tx"`
	AuditOutputScript string `db:"audit_output_script"`
	AuditMetadata     string `db:"audit_metadata"`
}
