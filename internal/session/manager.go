package session

import (
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one session controller per Telegram user.
type Manager struct {
	mu          sync.Mutex
	controllers map[int64]*Controller
	backend     Backend
	tokens      TokenSource
	progress    ProgressRefresher
	logger      *zap.Logger
}

// NewManager creates an empty manager.
func NewManager(backend Backend, tokens TokenSource, progress ProgressRefresher, logger *zap.Logger) *Manager {
	return &Manager{
		controllers: make(map[int64]*Controller),
		backend:     backend,
		tokens:      tokens,
		progress:    progress,
		logger:      logger,
	}
}

// Controller returns the controller for a user, creating it on first use.
func (m *Manager) Controller(userID int64) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[userID]
	if !ok {
		c = NewController(userID, m.backend, m.tokens, m.progress, m.logger)
		m.controllers[userID] = c
	}
	return c
}

// Drop removes a user's controller, ending any active session. Used on
// logout so a stale quiz timer cannot outlive the credential.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	c, ok := m.controllers[userID]
	delete(m.controllers, userID)
	m.mu.Unlock()

	if ok {
		c.EndPractice()
		c.EndQuiz()
	}
}
