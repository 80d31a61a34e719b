package server

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// Manager tracks live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxSessions  int
	peak         int
	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64

	onSessionCreate func(*Session)
	onSessionClose  func(*Session)

	logger *slog.Logger
}

// NewManager creates a Manager. maxSessions of zero means unlimited.
func NewManager(maxSessions int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		logger:      logger.With("component", "session_manager"),
	}
}

// Create registers a new session for conn. The session is not started.
func (m *Manager) Create(srv *Server, conn *websocket.Conn) (*Session, error) {
	m.mu.Lock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.mu.Unlock()
		return nil, errors.New("T205").WithDetailf("limit is %d", m.maxSessions)
	}

	s := newSession(srv, conn)
	s.onClose = m.remove
	m.sessions[s.ID] = s
	if len(m.sessions) > m.peak {
		m.peak = len(m.sessions)
	}
	m.totalCreated.Add(1)
	m.mu.Unlock()

	if m.onSessionCreate != nil {
		m.onSessionCreate(s)
	}
	m.logger.Info("session created",
		"session_id", s.ID,
		"active_sessions", m.Count())
	return s, nil
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	if !ok {
		return
	}
	m.totalClosed.Add(1)
	if m.onSessionClose != nil {
		m.onSessionClose(s)
	}
}

// Get returns a session by id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ForEach calls fn for every live session until fn returns false.
// fn runs without the manager lock held.
func (m *Manager) ForEach(fn func(*Session) bool) {
	for _, s := range m.snapshot() {
		if !fn(s) {
			return
		}
	}
}

func (m *Manager) snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Broadcast shows a toast in every live session and returns how many
// sessions accepted it.
func (m *Manager) Broadcast(opts ...toast.Option) int {
	n := 0
	m.ForEach(func(s *Session) bool {
		if s.Show(opts...) {
			n++
		}
		return true
	})
	return n
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	sessions := m.snapshot()
	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(s)
	}
	wg.Wait()
	m.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
}

// Stats returns aggregated session statistics.
func (m *Manager) Stats() ManagerStats {
	m.mu.RLock()
	active, peak := len(m.sessions), m.peak
	m.mu.RUnlock()
	return ManagerStats{
		Active:       active,
		Peak:         peak,
		TotalCreated: m.totalCreated.Load(),
		TotalClosed:  m.totalClosed.Load(),
	}
}

// ManagerStats contains aggregated session statistics.
type ManagerStats struct {
	Active       int    `json:"active"`
	Peak         int    `json:"peak"`
	TotalCreated uint64 `json:"totalCreated"`
	TotalClosed  uint64 `json:"totalClosed"`
}

// SetOnSessionCreate sets the callback for session creation.
func (m *Manager) SetOnSessionCreate(fn func(*Session)) { m.onSessionCreate = fn }

// SetOnSessionClose sets the callback for session close.
func (m *Manager) SetOnSessionClose(fn func(*Session)) { m.onSessionClose = fn }
