// Package otp issues and verifies email one-time passwords for password
// reset. Codes live in an explicit keyed store with expiry rather than
// ambient global state; verification consumes the code on success.
package otp

import (
	"sync"
	"time"
)

// Store is the keyed code store. Put replaces any code already held for
// the target; Consume succeeds at most once per issued code.
type Store interface {
	Put(target, code string, ttl time.Duration)
	Consume(target, code string) bool
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in process memory. Suitable for a single
// instance; codes are lost on restart, which is acceptable for short-lived
// reset flows.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time // test seam
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put stores a code for the target, replacing any outstanding one.
func (s *MemoryStore) Put(target, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[target] = entry{code: code, expiresAt: s.now().Add(ttl)}
}

// Consume verifies and removes the code in one step. An expired entry is
// removed regardless; a wrong code leaves the stored one intact so the
// user can retry with the correct digits.
func (s *MemoryStore) Consume(target, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[target]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, target)
		return false
	}
	if e.code != code {
		return false
	}
	delete(s.entries, target)
	return true
}
