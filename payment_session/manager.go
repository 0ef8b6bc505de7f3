package payment_session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	storefront "github.com/paypoq/storefront"
	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cache"
	"github.com/paypoq/storefront/config"
)

// Manager tracks live payment sessions by identifier so the confirm and
// success steps address the session the page load created. Loading the
// same identifier again tears down the previous session first.
type Manager struct {
	cfg         *config.Config
	gateway     backend.SessionGateway
	cardGateway storefront.Gateway
	configCache cache.ConfigCache
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cfg *config.Config, gateway backend.SessionGateway, cardGateway storefront.Gateway, configCache cache.ConfigCache, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:         cfg,
		gateway:     gateway,
		cardGateway: cardGateway,
		configCache: configCache,
		logger:      logger,
		sessions:    make(map[string]*Session),
	}
}

// Load creates and loads a session for the identifier. The session is
// registered only when the load succeeds; a failed load is fatal for
// that page view and leaves nothing behind.
func (m *Manager) Load(ctx context.Context, sessionID string) (*Session, error) {

	session := NewSession(m.cfg, m.gateway, m.cardGateway, m.configCache, m.logger, sessionID)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if previous, ok := m.sessions[sessionID]; ok {
		previous.Close()
	}
	m.sessions[sessionID] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the live session for the identifier, if one was loaded.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	return session, ok
}

// Release closes and forgets a session.
func (m *Manager) Release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[sessionID]; ok {
		session.Close()
		delete(m.sessions, sessionID)
	}
}
