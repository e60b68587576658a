package service

import (
	"context"
	"sync"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	apperrors "github.com/allisson/refvault/internal/errors"
)

// MemoryDirectory is an in-memory Directory, used by the CLI one-shot
// commands and by tests.
type MemoryDirectory struct {
	mu       sync.RWMutex
	commands map[string]*execDomain.Command
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{commands: make(map[string]*execDomain.Command)}
}

// Put stores a command, replacing any previous entry with the same id.
func (m *MemoryDirectory) Put(command *execDomain.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[command.CommandID] = command
}

// Get retrieves a command by its canonical id.
func (m *MemoryDirectory) Get(_ context.Context, commandID string) (*execDomain.Command, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	command, ok := m.commands[commandID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return command, nil
}

// ResolveLabel returns the canonical id of the command carrying the label.
func (m *MemoryDirectory) ResolveLabel(_ context.Context, label string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, command := range m.commands {
		if command.Label != nil && *command.Label == label {
			return command.CommandID, nil
		}
	}
	return "", apperrors.ErrNotFound
}
