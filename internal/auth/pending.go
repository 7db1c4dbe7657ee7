package auth

import (
	"sync"
	"time"
)

// PendingLogin is a not-yet-verified magic-link request.
type PendingLogin struct {
	Email   string
	Code    string
	Expires time.Time
}

// PendingStore holds pending logins between request-link and verify.
// Entries evict on expiry; Consume is one-shot. The interface keeps
// the login flow independent of where the ephemeral state lives.
type PendingStore interface {
	Put(token string, login PendingLogin)
	Consume(token string) (PendingLogin, bool)
	ConsumeByCode(code string) (PendingLogin, bool)
}

// MemoryPendingStore is the in-process PendingStore. Expired entries
// are swept on every access.
type MemoryPendingStore struct {
	mu      sync.Mutex
	pending map[string]PendingLogin
}

var _ PendingStore = (*MemoryPendingStore)(nil)

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{pending: make(map[string]PendingLogin)}
}

func (s *MemoryPendingStore) sweepLocked() {
	now := time.Now()
	for token, login := range s.pending {
		if now.After(login.Expires) {
			delete(s.pending, token)
		}
	}
}

func (s *MemoryPendingStore) Put(token string, login PendingLogin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.pending[token] = login
}

func (s *MemoryPendingStore) Consume(token string) (PendingLogin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	login, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	return login, ok
}

func (s *MemoryPendingStore) ConsumeByCode(code string) (PendingLogin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	for token, login := range s.pending {
		if login.Code == code {
			delete(s.pending, token)
			return login, true
		}
	}
	return PendingLogin{}, false
}
