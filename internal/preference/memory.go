package preference

import (
	"context"
	"sync"

	"github.com/zjrosen/tint/internal/theme"
)

// MemoryStore keeps the raw value in memory. It is used for ephemeral
// sessions and as a test double.
type MemoryStore struct {
	mu      sync.Mutex
	value   string
	found   bool
	saves   int
	loadErr error
	saveErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store pre-populated with a raw value,
// which need not be a valid mode.
func NewMemoryStoreWith(raw string) *MemoryStore {
	return &MemoryStore{value: raw, found: true}
}

// FailLoads makes subsequent loads return err.
func (s *MemoryStore) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSaves makes subsequent saves return err.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Raw returns the stored string.
func (s *MemoryStore) Raw() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.found
}

// Saves returns the number of successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (theme.Mode, bool, error) {
	return load(ctx, "memory", s)
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, mode theme.Mode) error {
	return save(ctx, s, mode)
}

func (s *MemoryStore) loadRaw(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return "", false, s.loadErr
	}
	return s.value, s.found, nil
}

func (s *MemoryStore) saveRaw(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.value = value
	s.found = true
	s.saves++
	return nil
}
