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
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `public_key, email, role, audit_txid, audit_raw_tx, audit_output_script, audit_metadata, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.PublicKey,
		&m.Email,
		&m.Role,
		&m.AuditTxid,
		&m.AuditRawTx,
		&m.AuditOutputScript,
		&m.AuditMetadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		modelUser.PublicKey,
		modelUser.Email,
		modelUser.Role,
		modelUser.AuditTxid,
		modelUser.AuditRawTx,
		modelUser.AuditOutputScript,
		modelUser.AuditMetadata,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, modelUser.PublicKey)
		}
		return fmt.Errorf("failed to save user %s: %w", modelUser.PublicKey, err)
	}
	return nil
}

// FindUserByPublicKey retrieves a user by public key, removed users
// included.
func (r *PgxUserRepository) FindUserByPublicKey(ctx context.Context, publicKey string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_key = $1;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, publicKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", publicKey, err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

// ListUsers returns all users, optionally filtering out removed members.
func (r *PgxUserRepository) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if !includeDeleted {
		query += ` WHERE role <> 'DELETED'`
	}
	query += ` ORDER BY created_at ASC, public_key ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var modelUsers []models.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading user rows: %w", err)
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

// UpdateUser persists email and role changes. Rows are never deleted; soft
// removal arrives here as a role change to DELETED.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)

	query := `
		UPDATE users
		SET email = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE public_key = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		modelUser.PublicKey,
		modelUser.Email,
		modelUser.Role,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", modelUser.PublicKey, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of user rows, removed users included.
// Used for first-user bootstrap detection, so DELETED rows must count.
func (r *PgxUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
