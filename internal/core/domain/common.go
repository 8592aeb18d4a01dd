package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Public key of the creating user
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// AuditRef is the opaque record attached to an entry by the external
// ledger-audit collaborator. It is stored verbatim and never interpreted.
type AuditRef struct {
	Txid         string `json:"txid"`
	RawTx        string `json:"rawTx"`
	OutputScript string `json:"outputScript"`
	Metadata     string `json:"metadata"`
}

// IsZero reports whether no audit record was attached (audit service disabled).
func (a AuditRef) IsZero() bool {
	return a.Txid == "" && a.RawTx == "" && a.OutputScript == "" && a.Metadata == ""
}
