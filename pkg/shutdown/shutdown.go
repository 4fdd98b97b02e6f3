package shutdown

import (
	"sync/atomic"
)

// Manager tracks graceful shutdown state.
type Manager struct {
	shuttingDown int32 // atomic flag: 0 = running, 1 = shutting down
	shutdownChan chan struct{}
}

// NewManager creates a new shutdown manager.
func NewManager() *Manager {
	return &Manager{
		shutdownChan: make(chan struct{}, 1),
	}
}

// IsShuttingDown reports whether shutdown has been triggered.
func (m *Manager) IsShuttingDown() bool {
	return atomic.LoadInt32(&m.shuttingDown) == 1
}

// Shutdown triggers graceful shutdown. Returns false if already shutting down.
func (m *Manager) Shutdown() bool {
	if !atomic.CompareAndSwapInt32(&m.shuttingDown, 0, 1) {
		return false
	}
	select {
	case m.shutdownChan <- struct{}{}:
	default:
	}
	return true
}

// Wait returns a channel closed on shutdown signal.
func (m *Manager) Wait() <-chan struct{} {
	return m.shutdownChan
}
