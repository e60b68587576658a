package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
)

// MySQLVariableRepository implements Variable persistence for MySQL databases.
// UUIDs are stored as BINARY(16).
type MySQLVariableRepository struct {
	db *sql.DB
}

// NewMySQLVariableRepository creates a new MySQL variable repository.
func NewMySQLVariableRepository(db *sql.DB) *MySQLVariableRepository {
	return &MySQLVariableRepository{db: db}
}

// Create inserts a new variable.
func (m *MySQLVariableRepository) Create(
	ctx context.Context,
	variable *variablesDomain.Variable,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO variables (id, ref_id, value, label, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := variable.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal variable id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLVariableRepository) GetByRefID(
	ctx context.Context,
	refID string,
) (*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ref_id, value, label, created_at, updated_at
			  FROM variables
			  WHERE ref_id = ?
			  LIMIT 1`

	return scanVariable(querier.QueryRowContext(ctx, query, refID))
}

// GetByLabel retrieves a variable by its label.
func (m *MySQLVariableRepository) GetByLabel(
	ctx context.Context,
	label string,
) (*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ref_id, value, label, created_at, updated_at
			  FROM variables
			  WHERE label = ?
			  LIMIT 1`

	return scanVariable(querier.QueryRowContext(ctx, query, label))
}

// UpdateValue replaces the stored value of a variable.
func (m *MySQLVariableRepository) UpdateValue(
	ctx context.Context,
	variable *variablesDomain.Variable,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE variables
			  SET value = ?, updated_at = ?
			  WHERE ref_id = ?`

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
func (m *MySQLVariableRepository) List(
	ctx context.Context,
) ([]*variablesDomain.Variable, error) {
	querier := database.GetTx(ctx, m.db)

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
		var (
			variable variablesDomain.Variable
			id       []byte
		)
		if err := rows.Scan(
			&id,
			&variable.RefID,
			&variable.Value,
			&variable.Label,
			&variable.CreatedAt,
			&variable.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan variable")
		}
		if err := variable.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal variable id")
		}
		variables = append(variables, &variable)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate variables")
	}

	return variables, nil
}

// Delete removes a variable by its reference id.
func (m *MySQLVariableRepository) Delete(ctx context.Context, refID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM variables WHERE ref_id = ?`

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

// scanVariable scans a single row with a BINARY(16) id column.
func scanVariable(row *sql.Row) (*variablesDomain.Variable, error) {
	var (
		variable variablesDomain.Variable
		id       []byte
	)
	err := row.Scan(
		&id,
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
		return nil, apperrors.Wrap(err, "failed to get variable")
	}
	if err := variable.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal variable id")
	}
	return &variable, nil
}
