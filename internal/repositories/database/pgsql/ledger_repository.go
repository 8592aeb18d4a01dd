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
	"github.com/smallbooks/smallbooks_backend/internal/utils/pagination"
)

// PgxLedgerRepository owns the account_entries and general_journal tables.
// Both belong to the same ledger, so writes to them always share one
// transaction.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, account_id, sequence_no, entry_date, encrypted_bag, created_at, created_by, audit_txid, audit_raw_tx, audit_output_script, audit_metadata`

func scanEntry(row pgx.Row) (models.AccountEntry, error) {
	var m models.AccountEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.SequenceNo,
		&m.EntryDate,
		&m.EncryptedBag,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.AuditTxid,
		&m.AuditRawTx,
		&m.AuditOutputScript,
		&m.AuditMetadata,
	)
	return m, err
}

// SaveEntry persists an account entry and its general-journal mirror in one
// transaction. A collision on (account_id, sequence_no) means another
// writer posted concurrently; it surfaces as apperrors.ErrConflict so the
// service can report the race.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.AccountEntry, mirror domain.GeneralJournalEntry) error {
	modelEntry := mapping.ToModelEntry(entry)
	modelMirror := mapping.ToModelJournalEntry(mirror)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	entryQuery := `
		INSERT INTO account_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.AccountID,
		modelEntry.SequenceNo,
		modelEntry.EntryDate,
		modelEntry.EncryptedBag,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.AuditTxid,
		modelEntry.AuditRawTx,
		modelEntry.AuditOutputScript,
		modelEntry.AuditMetadata,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sequence %d already taken on account %s", apperrors.ErrConflict, modelEntry.SequenceNo, modelEntry.AccountID)
		}
		return fmt.Errorf("failed to insert entry %s: %w", modelEntry.EntryID, err)
	}

	mirrorQuery := `
		INSERT INTO general_journal (journal_entry_id, entry_id, account_id, account_name, entry_date, encrypted_bag, created_at, created_by, audit_txid, audit_raw_tx, audit_output_script, audit_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, mirrorQuery,
		modelMirror.JournalEntryID,
		modelMirror.EntryID,
		modelMirror.AccountID,
		modelMirror.AccountName,
		modelMirror.EntryDate,
		modelMirror.EncryptedBag,
		modelMirror.CreatedAt,
		modelMirror.CreatedBy,
		modelMirror.AuditTxid,
		modelMirror.AuditRawTx,
		modelMirror.AuditOutputScript,
		modelMirror.AuditMetadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal mirror for entry %s: %w", modelMirror.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindLastEntry returns the highest-sequence entry for the account.
func (r *PgxLedgerRepository) FindLastEntry(ctx context.Context, accountID string) (*domain.AccountEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM account_entries
		WHERE account_id = $1
		ORDER BY sequence_no DESC
		LIMIT 1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find last entry for account %s: %w", accountID, err)
	}

	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// ListEntriesByAccount returns a page of entries in sequence order. The
// cursor is the last sequence number of the previous page.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	afterSequence := int64(0)
	if nextToken != nil && *nextToken != "" {
		var err error
		afterSequence, err = pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	// Fetch one extra row to learn whether another page exists.
	query := `
		SELECT ` + entryColumns + `
		FROM account_entries
		WHERE account_id = $1 AND sequence_no > $2
		ORDER BY sequence_no ASC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, afterSequence, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var modelEntries []models.AccountEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading entry rows: %w", err)
	}

	var newToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		token := pagination.EncodeSequenceToken(modelEntries[limit-1].SequenceNo)
		newToken = &token
	}

	return mapping.ToDomainEntrySlice(modelEntries), newToken, nil
}

// ListAllEntriesByAccount returns the account's full history in sequence
// order.
func (r *PgxLedgerRepository) ListAllEntriesByAccount(ctx context.Context, accountID string) ([]domain.AccountEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM account_entries
		WHERE account_id = $1
		ORDER BY sequence_no ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var modelEntries []models.AccountEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading entry rows: %w", err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// ListGeneralJournal returns a page of the cross-account journal, newest
// first. The cursor is the (created_at, journal_entry_id) pair of the last
// row of the previous page.
func (r *PgxLedgerRepository) ListGeneralJournal(ctx context.Context, limit int, nextToken *string) ([]domain.GeneralJournalEntry, *string, error) {
	baseQuery := `
		SELECT journal_entry_id, entry_id, account_id, account_name, entry_date, encrypted_bag, created_at, created_by, audit_txid, audit_raw_tx, audit_output_script, audit_metadata
		FROM general_journal
	`
	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, tokenErr := pagination.DecodeTimeIDToken(*nextToken)
		if tokenErr != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, tokenErr)
		}
		rows, err = r.Pool.Query(ctx, baseQuery+`
			WHERE (created_at, journal_entry_id) < ($1, $2)
			ORDER BY created_at DESC, journal_entry_id DESC
			LIMIT $3;
		`, createdAt, lastID, limit+1)
	} else {
		rows, err = r.Pool.Query(ctx, baseQuery+`
			ORDER BY created_at DESC, journal_entry_id DESC
			LIMIT $1;
		`, limit+1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query general journal: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.GeneralJournalEntry
	for rows.Next() {
		var m models.GeneralJournalEntry
		err := rows.Scan(
			&m.JournalEntryID,
			&m.EntryID,
			&m.AccountID,
			&m.AccountName,
			&m.EntryDate,
			&m.EncryptedBag,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.AuditTxid,
			&m.AuditRawTx,
			&m.AuditOutputScript,
			&m.AuditMetadata,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading journal rows: %w", err)
	}

	var newToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		token := pagination.EncodeTimeIDToken(last.CreatedAt, last.JournalEntryID)
		newToken = &token
	}

	return mapping.ToDomainJournalEntrySlice(modelEntries), newToken, nil
}
