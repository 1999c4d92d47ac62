package cart

import (
	"sync"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/google/uuid"
)

// Store keeps one Session per terminal. Sessions are created lazily on first
// access with the tenant configuration current at that moment; the snapshot
// then stays fixed until the session is dropped.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for a terminal, creating it with the supplied
// configuration if it does not exist yet.
func (st *Store) Get(terminalID string, tenantID uuid.UUID, cfg Config, defaultMethod enum.PaymentMethod) *Session {
	st.mu.RLock()
	s, ok := st.sessions[terminalID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[terminalID]; ok {
		return s
	}
	s = NewSession(terminalID, tenantID, cfg, defaultMethod)
	st.sessions[terminalID] = s
	return s
}

// Drop removes a terminal's session. The next access opens a fresh session
// with the tenant configuration current at that time.
func (st *Store) Drop(terminalID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, terminalID)
}
