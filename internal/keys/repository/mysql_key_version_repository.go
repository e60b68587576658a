package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	keysDomain "github.com/allisson/refvault/internal/keys/domain"
)

// MySQLKeyVersionRepository implements KeyVersion persistence for MySQL databases.
// UUIDs are stored as BINARY(16).
type MySQLKeyVersionRepository struct {
	db *sql.DB
}

// NewMySQLKeyVersionRepository creates a new MySQL key version repository.
func NewMySQLKeyVersionRepository(db *sql.DB) *MySQLKeyVersionRepository {
	return &MySQLKeyVersionRepository{db: db}
}

// Create inserts a new key version row.
func (m *MySQLKeyVersionRepository) Create(
	ctx context.Context,
	kv *keysDomain.KeyVersion,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO key_versions (id, version, fingerprint, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := kv.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key version id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		kv.Version,
		kv.Fingerprint,
		kv.IsActive,
		kv.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create key version")
	}
	return nil
}

// GetActive retrieves the currently active key version.
func (m *MySQLKeyVersionRepository) GetActive(
	ctx context.Context,
) (*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, version, fingerprint, is_active, created_at
			  FROM key_versions
			  WHERE is_active = TRUE
			  LIMIT 1`

	return scanKeyVersion(querier.QueryRowContext(ctx, query))
}

// GetByVersion retrieves a key version row by its version number.
func (m *MySQLKeyVersionRepository) GetByVersion(
	ctx context.Context,
	version uint,
) (*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, version, fingerprint, is_active, created_at
			  FROM key_versions
			  WHERE version = ?
			  LIMIT 1`

	return scanKeyVersion(querier.QueryRowContext(ctx, query, version))
}

// List retrieves all key version rows ordered by version descending.
func (m *MySQLKeyVersionRepository) List(
	ctx context.Context,
) ([]*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, version, fingerprint, is_active, created_at
			  FROM key_versions
			  ORDER BY version DESC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list key versions")
	}
	defer rows.Close()

	var versions []*keysDomain.KeyVersion
	for rows.Next() {
		var (
			kv keysDomain.KeyVersion
			id []byte
		)
		if err := rows.Scan(
			&id,
			&kv.Version,
			&kv.Fingerprint,
			&kv.IsActive,
			&kv.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key version")
		}
		if err := kv.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal key version id")
		}
		versions = append(versions, &kv)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key versions")
	}

	return versions, nil
}

// DeactivateAll clears the active flag on every key version.
func (m *MySQLKeyVersionRepository) DeactivateAll(ctx context.Context) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE key_versions SET is_active = FALSE WHERE is_active = TRUE`

	if _, err := querier.ExecContext(ctx, query); err != nil {
		return apperrors.Wrap(err, "failed to deactivate key versions")
	}
	return nil
}

// scanKeyVersion scans a single row with a BINARY(16) id column.
func scanKeyVersion(row *sql.Row) (*keysDomain.KeyVersion, error) {
	var (
		kv keysDomain.KeyVersion
		id []byte
	)
	err := row.Scan(
		&id,
		&kv.Version,
		&kv.Fingerprint,
		&kv.IsActive,
		&kv.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key version")
	}
	if err := kv.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal key version id")
	}
	return &kv, nil
}
