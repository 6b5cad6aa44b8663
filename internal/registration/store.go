package registration

import (
	"context"
	"sync"
)

// draftKeyPrefix matches the sessionStorage key the web clients used for
// step-1 data.
const draftKeyPrefix = "registerDataStep1"

// DraftStore holds at most one draft per registration session. Put replaces
// any existing draft wholesale; Get returns ErrNoDraft when nothing is held.
type DraftStore interface {
	Put(ctx context.Context, sessionID string, draft Draft) error
	Get(ctx context.Context, sessionID string) (Draft, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryStore builds an in-memory draft store for tests and dev mode.
func NewMemoryStore() DraftStore {
	return &memoryStore{drafts: make(map[string]Draft)}
}

func (s *memoryStore) Put(_ context.Context, sessionID string, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = draft
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return Draft{}, ErrNoDraft
	}
	return draft, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}
