package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/refvault/internal/errors"
	execDomain "github.com/allisson/refvault/internal/exec/domain"
)

// fakeCommandRepository keeps commands in memory keyed by canonical id.
type fakeCommandRepository struct {
	commands map[string]*execDomain.Command
}

func newFakeCommandRepository() *fakeCommandRepository {
	return &fakeCommandRepository{commands: make(map[string]*execDomain.Command)}
}

func (f *fakeCommandRepository) Create(_ context.Context, command *execDomain.Command) error {
	f.commands[command.CommandID] = command
	return nil
}

func (f *fakeCommandRepository) Get(_ context.Context, commandID string) (*execDomain.Command, error) {
	command, ok := f.commands[commandID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return command, nil
}

func (f *fakeCommandRepository) ResolveLabel(_ context.Context, label string) (string, error) {
	for _, command := range f.commands {
		if command.Label != nil && *command.Label == label {
			return command.CommandID, nil
		}
	}
	return "", apperrors.ErrNotFound
}

func (f *fakeCommandRepository) List(_ context.Context) ([]*execDomain.Command, error) {
	out := make([]*execDomain.Command, 0, len(f.commands))
	for _, command := range f.commands {
		out = append(out, command)
	}
	return out, nil
}

func (f *fakeCommandRepository) Delete(_ context.Context, commandID string) error {
	if _, ok := f.commands[commandID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.commands, commandID)
	return nil
}

func TestCommandUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a shell command", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())

		command, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo hello", nil)
		require.NoError(t, err)
		assert.Equal(t, "cmd001", command.CommandID)
		assert.Equal(t, execDomain.ShellCommand, command.Kind)
		assert.Nil(t, command.Label)

		got, err := useCase.Get(ctx, "cmd001")
		require.NoError(t, err)
		assert.Equal(t, "echo hello", got.Body)
	})

	t.Run("stores a static command with a label", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())
		label := "greeting"

		_, err := useCase.Create(ctx, "cmd001", execDomain.StaticCommand, "hello", &label)
		require.NoError(t, err)

		commandID, err := useCase.ResolveLabel(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "cmd001", commandID)
	})

	t.Run("rejects a duplicate canonical id", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())

		_, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo one", nil)
		require.NoError(t, err)

		_, err = useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo two", nil)
		assert.ErrorIs(t, err, execDomain.ErrDuplicateCommandID)
	})

	t.Run("rejects a duplicate label", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())
		label := "token"

		_, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo one", &label)
		require.NoError(t, err)

		_, err = useCase.Create(ctx, "cmd002", execDomain.ShellCommand, "echo two", &label)
		assert.ErrorIs(t, err, execDomain.ErrDuplicateLabel)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())

		_, err := useCase.Create(ctx, "cmd001", execDomain.CommandKind("script"), "echo", nil)
		assert.ErrorIs(t, err, execDomain.ErrUnknownKind)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())

		_, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects a non-alphanumeric canonical id", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())

		_, err := useCase.Create(ctx, "cmd#1", execDomain.ShellCommand, "echo", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects a label containing grammar characters", func(t *testing.T) {
		useCase := NewCommandUseCase(newFakeCommandRepository())
		label := "bad{label}"

		_, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo", &label)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestCommandUseCase_ResolveLabel_NotFound(t *testing.T) {
	useCase := NewCommandUseCase(newFakeCommandRepository())

	_, err := useCase.ResolveLabel(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommandUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	useCase := NewCommandUseCase(newFakeCommandRepository())

	_, err := useCase.Create(ctx, "cmd001", execDomain.ShellCommand, "echo", nil)
	require.NoError(t, err)

	require.NoError(t, useCase.Delete(ctx, "cmd001"))

	_, err = useCase.Get(ctx, "cmd001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = useCase.Delete(ctx, "cmd001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
