package store

import (
	"context"
	"sync"
	"time"

	"fcastillo/sri-comprobantes/internal/models"
)

// MemoryStore is an in-memory comprobante store guarded by an RWMutex.
// It backs CLI runs without a database and the package tests.
type MemoryStore struct {
	mu           sync.RWMutex
	comprobantes map[string]*models.Comprobante
	order        []string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		comprobantes: make(map[string]*models.Comprobante),
	}
}

// Append stores a new record. It fails with ErrDuplicateClave when the
// clave de acceso is already present.
func (m *MemoryStore) Append(ctx context.Context, c *models.Comprobante) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comprobantes[c.ClaveAcceso]; ok {
		return ErrDuplicateClave
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	rec := *c
	m.comprobantes[c.ClaveAcceso] = &rec
	m.order = append(m.order, c.ClaveAcceso)
	return nil
}

// ListClaves returns the set of persisted access keys.
func (m *MemoryStore) ListClaves(ctx context.Context) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	claves := make(map[string]struct{}, len(m.comprobantes))
	for clave := range m.comprobantes {
		claves[clave] = struct{}{}
	}
	return claves, nil
}

// List returns copies of all records in insertion order.
func (m *MemoryStore) List(ctx context.Context) ([]models.Comprobante, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Comprobante, 0, len(m.order))
	for _, clave := range m.order {
		out = append(out, *m.comprobantes[clave])
	}
	return out, nil
}
