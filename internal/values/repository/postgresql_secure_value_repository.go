// Package repository implements persistence for secure values.
// Repositories support both PostgreSQL and MySQL; label uniqueness is
// enforced by a partial/filtered unique index in addition to the use case's
// own check, per the multi-writer hardening recommendation.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
)

// PostgreSQLSecureValueRepository implements SecureValue persistence for PostgreSQL databases.
type PostgreSQLSecureValueRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecureValueRepository creates a new PostgreSQL secure value repository.
func NewPostgreSQLSecureValueRepository(db *sql.DB) *PostgreSQLSecureValueRepository {
	return &PostgreSQLSecureValueRepository{db: db}
}

// Create inserts a new secure value.
func (p *PostgreSQLSecureValueRepository) Create(
	ctx context.Context,
	value *valuesDomain.SecureValue,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secure_values (id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		value.ID,
		value.RefID,
		value.Ciphertext,
		value.Nonce,
		value.KeyVersion,
		value.Label,
		value.CreatedAt,
		value.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secure value")
	}
	return nil
}

// GetByRefID retrieves a secure value by its reference id.
func (p *PostgreSQLSecureValueRepository) GetByRefID(
	ctx context.Context,
	refID string,
) (*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE ref_id = $1
			  LIMIT 1`

	var value valuesDomain.SecureValue
	err := querier.QueryRowContext(ctx, query, refID).Scan(
		&value.ID,
		&value.RefID,
		&value.Ciphertext,
		&value.Nonce,
		&value.KeyVersion,
		&value.Label,
		&value.CreatedAt,
		&value.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secure value by ref id")
	}

	return &value, nil
}

// GetByLabel retrieves a secure value by its label.
func (p *PostgreSQLSecureValueRepository) GetByLabel(
	ctx context.Context,
	label string,
) (*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE label = $1
			  LIMIT 1`

	var value valuesDomain.SecureValue
	err := querier.QueryRowContext(ctx, query, label).Scan(
		&value.ID,
		&value.RefID,
		&value.Ciphertext,
		&value.Nonce,
		&value.KeyVersion,
		&value.Label,
		&value.CreatedAt,
		&value.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secure value by label")
	}

	return &value, nil
}

// UpdateSealed replaces the sealed payload of a secure value in place.
// Used for user edits and for lazy key migration.
func (p *PostgreSQLSecureValueRepository) UpdateSealed(
	ctx context.Context,
	value *valuesDomain.SecureValue,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secure_values
			  SET ciphertext = $1, nonce = $2, key_version = $3, updated_at = $4
			  WHERE ref_id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		value.Ciphertext,
		value.Nonce,
		value.KeyVersion,
		value.UpdatedAt,
		value.RefID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update secure value")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List retrieves all secure values ordered by creation time descending.
func (p *PostgreSQLSecureValueRepository) List(
	ctx context.Context,
) ([]*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  ORDER BY created_at DESC`

	return p.queryValues(ctx, querier, query)
}

// ListBehindVersion retrieves secure values sealed under a key version older
// than the given version. Used by the bulk rewrap operation.
func (p *PostgreSQLSecureValueRepository) ListBehindVersion(
	ctx context.Context,
	version uint,
) ([]*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE key_version < $1
			  ORDER BY key_version ASC`

	return p.queryValues(ctx, querier, query, version)
}

// Delete removes a secure value by its reference id.
func (p *PostgreSQLSecureValueRepository) Delete(ctx context.Context, refID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secure_values WHERE ref_id = $1`

	result, err := querier.ExecContext(ctx, query, refID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secure value")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (p *PostgreSQLSecureValueRepository) queryValues(
	ctx context.Context,
	querier database.Querier,
	query string,
	args ...any,
) ([]*valuesDomain.SecureValue, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secure values")
	}
	defer rows.Close()

	var values []*valuesDomain.SecureValue
	for rows.Next() {
		var value valuesDomain.SecureValue
		if err := rows.Scan(
			&value.ID,
			&value.RefID,
			&value.Ciphertext,
			&value.Nonce,
			&value.KeyVersion,
			&value.Label,
			&value.CreatedAt,
			&value.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secure value")
		}
		values = append(values, &value)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secure values")
	}

	return values, nil
}
