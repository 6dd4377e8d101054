// Package session stores per-session navigation state server-side. One
// walkthrough session owns one NavigationState; sessions never share state.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/google/uuid"
)

// ErrSessionNotFound indicates the session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Store persists navigation state between requests.
type Store interface {
	// Create allocates a session id for a fresh state and returns it.
	Create(ctx context.Context, state *models.NavigationState) (string, error)

	// Get returns the state for a session, or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*models.NavigationState, error)

	// Save replaces the state for an existing session.
	Save(ctx context.Context, sessionID string, state *models.NavigationState) error

	// Delete discards a session. Unknown ids are a no-op.
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the default single-process store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.NavigationState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.NavigationState)}
}

func (s *MemoryStore) Create(_ context.Context, state *models.NavigationState) (string, error) {
	sessionID := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = state

	return sessionID, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.NavigationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return state, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, state *models.NavigationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	s.sessions[sessionID] = state

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)

	return nil
}
