package keystore

import (
	"context"
	"sync"

	apperrors "github.com/allisson/refvault/internal/errors"
)

// MemoryKeyStore is an in-process KeyStore for tests and throwaway
// environments. Key material is lost when the process exits.
type MemoryKeyStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{
		entries: make(map[string][]byte),
	}
}

func entryKey(scope, account string) string {
	return scope + "/" + account
}

// Put stores a copy of the material under scope/account.
func (m *MemoryKeyStore) Put(ctx context.Context, scope, account string, material []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(material))
	copy(cp, material)
	m.entries[entryKey(scope, account)] = cp
	return nil
}

// Get returns a copy of the material stored under scope/account.
func (m *MemoryKeyStore) Get(ctx context.Context, scope, account string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	material, ok := m.entries[entryKey(scope, account)]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "key store entry")
	}

	cp := make([]byte, len(material))
	copy(cp, material)
	return cp, nil
}

// Delete removes the entry under scope/account.
func (m *MemoryKeyStore) Delete(ctx context.Context, scope, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, entryKey(scope, account))
	return nil
}
