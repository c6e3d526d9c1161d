package blob

import (
	"context"
	"sync"
)

// MemoryStore keeps blobs in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

// Put stores text under key, replacing any previous value.
func (s *MemoryStore) Put(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = text
}

// Fetch implements repository.BlobStore.
func (s *MemoryStore) Fetch(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.blobs[key]
	return text, ok, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
