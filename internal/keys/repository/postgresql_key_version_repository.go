// Package repository implements persistence for key version metadata.
// Repositories support both PostgreSQL and MySQL; rows are append-only and
// carry no key material, only version, fingerprint and the active flag.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	keysDomain "github.com/allisson/refvault/internal/keys/domain"
)

// PostgreSQLKeyVersionRepository implements KeyVersion persistence for PostgreSQL databases.
type PostgreSQLKeyVersionRepository struct {
	db *sql.DB
}

// NewPostgreSQLKeyVersionRepository creates a new PostgreSQL key version repository.
func NewPostgreSQLKeyVersionRepository(db *sql.DB) *PostgreSQLKeyVersionRepository {
	return &PostgreSQLKeyVersionRepository{db: db}
}

// Create inserts a new key version row.
func (p *PostgreSQLKeyVersionRepository) Create(
	ctx context.Context,
	kv *keysDomain.KeyVersion,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_versions (id, version, fingerprint, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		kv.ID,
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
func (p *PostgreSQLKeyVersionRepository) GetActive(
	ctx context.Context,
) (*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, version, fingerprint, is_active, created_at
			  FROM key_versions
			  WHERE is_active = TRUE
			  LIMIT 1`

	var kv keysDomain.KeyVersion
	err := querier.QueryRowContext(ctx, query).Scan(
		&kv.ID,
		&kv.Version,
		&kv.Fingerprint,
		&kv.IsActive,
		&kv.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get active key version")
	}

	return &kv, nil
}

// GetByVersion retrieves a key version row by its version number.
func (p *PostgreSQLKeyVersionRepository) GetByVersion(
	ctx context.Context,
	version uint,
) (*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, version, fingerprint, is_active, created_at
			  FROM key_versions
			  WHERE version = $1
			  LIMIT 1`

	var kv keysDomain.KeyVersion
	err := querier.QueryRowContext(ctx, query, version).Scan(
		&kv.ID,
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

	return &kv, nil
}

// List retrieves all key version rows ordered by version descending.
func (p *PostgreSQLKeyVersionRepository) List(
	ctx context.Context,
) ([]*keysDomain.KeyVersion, error) {
	querier := database.GetTx(ctx, p.db)

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
		var kv keysDomain.KeyVersion
		if err := rows.Scan(
			&kv.ID,
			&kv.Version,
			&kv.Fingerprint,
			&kv.IsActive,
			&kv.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key version")
		}
		versions = append(versions, &kv)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key versions")
	}

	return versions, nil
}

// DeactivateAll clears the active flag on every key version.
// Used inside the rotation transaction before inserting the new active row.
func (p *PostgreSQLKeyVersionRepository) DeactivateAll(ctx context.Context) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_versions SET is_active = FALSE WHERE is_active = TRUE`

	if _, err := querier.ExecContext(ctx, query); err != nil {
		return apperrors.Wrap(err, "failed to deactivate key versions")
	}
	return nil
}
