package mapping

import (
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/models"
)

// ToModelAuditFields converts domain audit fields to model audit fields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts model audit fields to domain audit fields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAuditRef flattens a domain audit reference into its row columns
func ToModelAuditRef(d domain.AuditRef) models.AuditRefFields {
	return models.AuditRefFields{
		AuditTxid:         d.Txid,
		AuditRawTx:        d.RawTx,
		AuditOutputScript: d.OutputScript,
		AuditMetadata:     d.Metadata,
	}
}

// ToDomainAuditRef rebuilds a domain audit reference from row columns
func ToDomainAuditRef(m models.AuditRefFields) domain.AuditRef {
	return domain.AuditRef{
		Txid:         m.AuditTxid,
		RawTx:        m.AuditRawTx,
		OutputScript: m.AuditOutputScript,
		Metadata:     m.AuditMetadata,
	}
}
