package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
)

// MySQLSecureValueRepository implements SecureValue persistence for MySQL databases.
// UUIDs are stored as BINARY(16) and binary payloads as BLOB.
type MySQLSecureValueRepository struct {
	db *sql.DB
}

// NewMySQLSecureValueRepository creates a new MySQL secure value repository.
func NewMySQLSecureValueRepository(db *sql.DB) *MySQLSecureValueRepository {
	return &MySQLSecureValueRepository{db: db}
}

// Create inserts a new secure value.
func (m *MySQLSecureValueRepository) Create(
	ctx context.Context,
	value *valuesDomain.SecureValue,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secure_values (id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := value.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secure value id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLSecureValueRepository) GetByRefID(
	ctx context.Context,
	refID string,
) (*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE ref_id = ?
			  LIMIT 1`

	return scanSecureValue(querier.QueryRowContext(ctx, query, refID))
}

// GetByLabel retrieves a secure value by its label.
func (m *MySQLSecureValueRepository) GetByLabel(
	ctx context.Context,
	label string,
) (*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE label = ?
			  LIMIT 1`

	return scanSecureValue(querier.QueryRowContext(ctx, query, label))
}

// UpdateSealed replaces the sealed payload of a secure value in place.
func (m *MySQLSecureValueRepository) UpdateSealed(
	ctx context.Context,
	value *valuesDomain.SecureValue,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secure_values
			  SET ciphertext = ?, nonce = ?, key_version = ?, updated_at = ?
			  WHERE ref_id = ?`

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
func (m *MySQLSecureValueRepository) List(
	ctx context.Context,
) ([]*valuesDomain.SecureValue, error) {
	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  ORDER BY created_at DESC`

	return m.queryValues(ctx, query)
}

// ListBehindVersion retrieves secure values sealed under a key version older
// than the given version.
func (m *MySQLSecureValueRepository) ListBehindVersion(
	ctx context.Context,
	version uint,
) ([]*valuesDomain.SecureValue, error) {
	query := `SELECT id, ref_id, ciphertext, nonce, key_version, label, created_at, updated_at
			  FROM secure_values
			  WHERE key_version < ?
			  ORDER BY key_version ASC`

	return m.queryValues(ctx, query, version)
}

// Delete removes a secure value by its reference id.
func (m *MySQLSecureValueRepository) Delete(ctx context.Context, refID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM secure_values WHERE ref_id = ?`

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

func (m *MySQLSecureValueRepository) queryValues(
	ctx context.Context,
	query string,
	args ...any,
) ([]*valuesDomain.SecureValue, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secure values")
	}
	defer rows.Close()

	var values []*valuesDomain.SecureValue
	for rows.Next() {
		var (
			value valuesDomain.SecureValue
			id    []byte
		)
		if err := rows.Scan(
			&id,
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
		if err := value.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal secure value id")
		}
		values = append(values, &value)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secure values")
	}

	return values, nil
}

// scanSecureValue scans a single row with a BINARY(16) id column.
func scanSecureValue(row *sql.Row) (*valuesDomain.SecureValue, error) {
	var (
		value valuesDomain.SecureValue
		id    []byte
	)
	err := row.Scan(
		&id,
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
		return nil, apperrors.Wrap(err, "failed to get secure value")
	}
	if err := value.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secure value id")
	}
	return &value, nil
}
