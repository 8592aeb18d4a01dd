package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	"github.com/smallbooks/smallbooks_backend/internal/models"
	"github.com/smallbooks/smallbooks_backend/internal/utils/mapping"
	"github.com/smallbooks/smallbooks_backend/internal/utils/pagination"
)

type PgxMessageRepository struct {
	pool *pgxpool.Pool
}

// newPgxMessageRepository creates a new repository for payment messages.
func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{pool: pool}
}

var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

const messageColumns = `message_id, sender_public_key, recipient_public_key, message_type, status, amount, body, created_at, created_by, last_updated_at, last_updated_by`

func scanMessage(row pgx.Row) (models.PaymentMessage, error) {
	var m models.PaymentMessage
	err := row.Scan(
		&m.MessageID,
		&m.SenderPublicKey,
		&m.RecipientPublicKey,
		&m.MessageType,
		&m.Status,
		&m.Amount,
		&m.Body,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMessage inserts a new payment message.
func (r *PgxMessageRepository) SaveMessage(ctx context.Context, message domain.PaymentMessage) error {
	modelMsg := mapping.ToModelMessage(message)

	query := `
		INSERT INTO payment_messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		modelMsg.MessageID,
		modelMsg.SenderPublicKey,
		modelMsg.RecipientPublicKey,
		modelMsg.MessageType,
		modelMsg.Status,
		modelMsg.Amount,
		modelMsg.Body,
		modelMsg.CreatedAt,
		modelMsg.CreatedBy,
		modelMsg.LastUpdatedAt,
		modelMsg.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message %s already exists", apperrors.ErrDuplicate, modelMsg.MessageID)
		}
		return fmt.Errorf("failed to save message %s: %w", modelMsg.MessageID, err)
	}
	return nil
}

// FindMessageByID retrieves a message by ID.
func (r *PgxMessageRepository) FindMessageByID(ctx context.Context, messageID string) (*domain.PaymentMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM payment_messages WHERE message_id = $1;`

	m, err := scanMessage(r.pool.QueryRow(ctx, query, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find message %s: %w", messageID, err)
	}

	domainMsg := mapping.ToDomainMessage(m)
	return &domainMsg, nil
}

// ListMessagesByParticipant returns messages sent or received by publicKey,
// newest first. The cursor is the (created_at, message_id) pair of the last
// row of the previous page.
func (r *PgxMessageRepository) ListMessagesByParticipant(ctx context.Context, publicKey string, limit int, nextToken *string) ([]domain.PaymentMessage, *string, error) {
	baseQuery := `
		SELECT ` + messageColumns + `
		FROM payment_messages
		WHERE (sender_public_key = $1 OR recipient_public_key = $1)
	`
	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, tokenErr := pagination.DecodeTimeIDToken(*nextToken)
		if tokenErr != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, tokenErr)
		}
		rows, err = r.pool.Query(ctx, baseQuery+`
			AND (created_at, message_id) < ($2, $3)
			ORDER BY created_at DESC, message_id DESC
			LIMIT $4;
		`, publicKey, createdAt, lastID, limit+1)
	} else {
		rows, err = r.pool.Query(ctx, baseQuery+`
			ORDER BY created_at DESC, message_id DESC
			LIMIT $2;
		`, publicKey, limit+1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query messages for %s: %w", publicKey, err)
	}
	defer rows.Close()

	var modelMsgs []models.PaymentMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		modelMsgs = append(modelMsgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading message rows: %w", err)
	}

	var newToken *string
	if len(modelMsgs) > limit {
		modelMsgs = modelMsgs[:limit]
		last := modelMsgs[limit-1]
		token := pagination.EncodeTimeIDToken(last.CreatedAt, last.MessageID)
		newToken = &token
	}

	return mapping.ToDomainMessageSlice(modelMsgs), newToken, nil
}

// UpdateMessageStatus transitions a message's status.
func (r *PgxMessageRepository) UpdateMessageStatus(ctx context.Context, messageID string, status domain.MessageStatus, updatedBy string) error {
	query := `
		UPDATE payment_messages
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE message_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, messageID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update message %s: %w", messageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
