// Package repository implements persistence for stored commands, backing the
// command directory used by chain resolution.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	execDomain "github.com/allisson/refvault/internal/exec/domain"
)

// PostgreSQLCommandRepository implements Command persistence for PostgreSQL databases.
type PostgreSQLCommandRepository struct {
	db *sql.DB
}

// NewPostgreSQLCommandRepository creates a new PostgreSQL command repository.
func NewPostgreSQLCommandRepository(db *sql.DB) *PostgreSQLCommandRepository {
	return &PostgreSQLCommandRepository{db: db}
}

// Create inserts a new command.
func (p *PostgreSQLCommandRepository) Create(
	ctx context.Context,
	command *execDomain.Command,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO commands (id, command_id, label, kind, body, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		command.ID,
		command.CommandID,
		command.Label,
		command.Kind,
		command.Body,
		command.CreatedAt,
		command.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create command")
	}
	return nil
}

// Get retrieves a command by its canonical id.
func (p *PostgreSQLCommandRepository) Get(
	ctx context.Context,
	commandID string,
) (*execDomain.Command, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, command_id, label, kind, body, created_at, updated_at
			  FROM commands
			  WHERE command_id = $1
			  LIMIT 1`

	var command execDomain.Command
	err := querier.QueryRowContext(ctx, query, commandID).Scan(
		&command.ID,
		&command.CommandID,
		&command.Label,
		&command.Kind,
		&command.Body,
		&command.CreatedAt,
		&command.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get command")
	}

	return &command, nil
}

// ResolveLabel returns the canonical id of the command carrying the label.
func (p *PostgreSQLCommandRepository) ResolveLabel(
	ctx context.Context,
	label string,
) (string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT command_id
			  FROM commands
			  WHERE label = $1
			  LIMIT 1`

	var commandID string
	err := querier.QueryRowContext(ctx, query, label).Scan(&commandID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to resolve command label")
	}

	return commandID, nil
}

// List retrieves all commands ordered by creation time descending.
func (p *PostgreSQLCommandRepository) List(
	ctx context.Context,
) ([]*execDomain.Command, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, command_id, label, kind, body, created_at, updated_at
			  FROM commands
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list commands")
	}
	defer rows.Close()

	var commands []*execDomain.Command
	for rows.Next() {
		var command execDomain.Command
		if err := rows.Scan(
			&command.ID,
			&command.CommandID,
			&command.Label,
			&command.Kind,
			&command.Body,
			&command.CreatedAt,
			&command.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan command")
		}
		commands = append(commands, &command)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate commands")
	}

	return commands, nil
}

// Delete removes a command by its canonical id.
func (p *PostgreSQLCommandRepository) Delete(ctx context.Context, commandID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM commands WHERE command_id = $1`

	result, err := querier.ExecContext(ctx, query, commandID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete command")
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
