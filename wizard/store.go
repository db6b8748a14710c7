package wizard

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Store holds live wizard sessions in memory. Each session has a single
// logical mutator (its owning client), but the background extraction
// goroutine also writes results back, so every mutation goes through the
// store's lock.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create registers a new session for a user and returns a snapshot of it
func (st *Store) Create(userID uuid.UUID) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := NewSession(userID)
	st.sessions[s.ID] = s
	return *s
}

// Get returns a snapshot of a session
func (st *Store) Get(id uuid.UUID) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *s, nil
}

// Update runs fn against the session under the store's lock and returns a
// snapshot of the updated state. fn returning an error leaves any changes
// it already made in place; mutators are expected to fail before mutating.
func (st *Store) Update(id uuid.UUID, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if err := fn(s); err != nil {
		return *s, err
	}
	return *s, nil
}

// Delete cancels a session. The session's transient state is reset first so
// its generation counter advances, guaranteeing a late extraction result
// can never be applied even if a stale pointer survives somewhere.
func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.Reset()
	delete(st.sessions, id)
	return nil
}
