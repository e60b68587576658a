// Package repository implements persistence for variables.
// Repositories support both PostgreSQL and MySQL; label uniqueness is
// enforced by a partial/filtered unique index in addition to the use case's
// own check.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
)

// PostgreSQLVariableRepository implements Variable persistence for PostgreSQL databases.
type PostgreSQLVariableRepository struct {
	db *sql.DB
}

// NewPostgreSQLVariableRepository creates a new PostgreSQL variable repository.
func NewPostgreSQLVariableRepository(db *sql.DB) *PostgreSQLVariableRepository {
	return &PostgreSQLVariableRepository{db: db}
}

// Create inserts a new variable.
func (p *PostgreSQLVariableRepository) Create(
	ctx context.Context,
	variable *variablesDomain.Variable,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO variables (id, ref_id, value, label, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		variable.ID,
		variable.RefID,
		variable.Value,
		variable.Label,
		variable.CreatedAt,
		variable.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create variable")
	}
	return nil
}

// GetByRefID retrieves a variable by its reference id.
func (p *PostgreSQLVariableRepository) GetByRefID(
	ctx context.Context,
	refID string,
) (*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, value, label, created_at, updated_at
			  FROM variables
			  WHERE ref_id = $1
			  LIMIT 1`

	var variable variablesDomain.Variable
	err := querier.QueryRowContext(ctx, query, refID).Scan(
		&variable.ID,
		&variable.RefID,
		&variable.Value,
		&variable.Label,
		&variable.CreatedAt,
		&variable.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get variable by ref id")
	}

	return &variable, nil
}

// GetByLabel retrieves a variable by its label.
func (p *PostgreSQLVariableRepository) GetByLabel(
	ctx context.Context,
	label string,
) (*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, value, label, created_at, updated_at
			  FROM variables
			  WHERE label = $1
			  LIMIT 1`

	var variable variablesDomain.Variable
	err := querier.QueryRowContext(ctx, query, label).Scan(
		&variable.ID,
		&variable.RefID,
		&variable.Value,
		&variable.Label,
		&variable.CreatedAt,
		&variable.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get variable by label")
	}

	return &variable, nil
}

// UpdateValue replaces the stored value of a variable.
func (p *PostgreSQLVariableRepository) UpdateValue(
	ctx context.Context,
	variable *variablesDomain.Variable,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE variables
			  SET value = $1, updated_at = $2
			  WHERE ref_id = $3`

	result, err := querier.ExecContext(
		ctx,
		query,
		variable.Value,
		variable.UpdatedAt,
		variable.RefID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update variable")
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

// List retrieves all variables ordered by creation time descending.
func (p *PostgreSQLVariableRepository) List(
	ctx context.Context,
) ([]*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ref_id, value, label, created_at, updated_at
			  FROM variables
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list variables")
	}
	defer rows.Close()

	var variables []*variablesDomain.Variable
	for rows.Next() {
		var variable variablesDomain.Variable
		if err := rows.Scan(
			&variable.ID,
			&variable.RefID,
			&variable.Value,
			&variable.Label,
			&variable.CreatedAt,
			&variable.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan variable")
		}
		variables = append(variables, &variable)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate variables")
	}

	return variables, nil
}

// Delete removes a variable by its reference id.
func (p *PostgreSQLVariableRepository) Delete(ctx context.Context, refID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM variables WHERE ref_id = $1`

	result, err := querier.ExecContext(ctx, query, refID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete variable")
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
