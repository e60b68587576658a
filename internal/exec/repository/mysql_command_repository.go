package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/refvault/internal/database"
	apperrors "github.com/allisson/refvault/internal/errors"
	execDomain "github.com/allisson/refvault/internal/exec/domain"
)

// MySQLCommandRepository implements Command persistence for MySQL databases.
// UUIDs are stored as BINARY(16).
type MySQLCommandRepository struct {
	db *sql.DB
}

// NewMySQLCommandRepository creates a new MySQL command repository.
func NewMySQLCommandRepository(db *sql.DB) *MySQLCommandRepository {
	return &MySQLCommandRepository{db: db}
}

// Create inserts a new command.
func (m *MySQLCommandRepository) Create(
	ctx context.Context,
	command *execDomain.Command,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO commands (id, command_id, label, kind, body, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := command.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal command id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLCommandRepository) Get(
	ctx context.Context,
	commandID string,
) (*execDomain.Command, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, command_id, label, kind, body, created_at, updated_at
			  FROM commands
			  WHERE command_id = ?
			  LIMIT 1`

	var (
		command execDomain.Command
		id      []byte
	)
	err := querier.QueryRowContext(ctx, query, commandID).Scan(
		&id,
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
	if err := command.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal command id")
	}

	return &command, nil
}

// ResolveLabel returns the canonical id of the command carrying the label.
func (m *MySQLCommandRepository) ResolveLabel(
	ctx context.Context,
	label string,
) (string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT command_id
			  FROM commands
			  WHERE label = ?
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
func (m *MySQLCommandRepository) List(
	ctx context.Context,
) ([]*execDomain.Command, error) {
	querier := database.GetTx(ctx, m.db)

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
		var (
			command execDomain.Command
			id      []byte
		)
		if err := rows.Scan(
			&id,
			&command.CommandID,
			&command.Label,
			&command.Kind,
			&command.Body,
			&command.CreatedAt,
			&command.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan command")
		}
		if err := command.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal command id")
		}
		commands = append(commands, &command)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate commands")
	}

	return commands, nil
}

// Delete removes a command by its canonical id.
func (m *MySQLCommandRepository) Delete(ctx context.Context, commandID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM commands WHERE command_id = ?`

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
