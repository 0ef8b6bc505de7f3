package cache

import (
	"context"
	"sync"

	"github.com/paypoq/storefront/models"
)

// MemoryCache is a process-local ConfigCache for development and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.GatewayConfig
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*models.GatewayConfig)}
}

func (m *MemoryCache) Get(_ context.Context, organizationID string) (*models.GatewayConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.entries[organizationID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return cfg, nil
}

func (m *MemoryCache) Set(_ context.Context, organizationID string, cfg *models.GatewayConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[organizationID] = cfg
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, organizationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, organizationID)
	return nil
}
