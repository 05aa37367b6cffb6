package repository

import (
	"context"
	"sync"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// MemoryKVStore is a process-local KVStore, used when no database is configured.
type MemoryKVStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
	changeNotifier
}

// NewMemoryKVStore creates an empty MemoryKVStore.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{entries: make(map[string]map[string][]byte)}
}

func (s *MemoryKVStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[namespace][key]
	if !ok {
		return nil, newKeyNotFoundError(namespace, key)
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryKVStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	ns, ok := s.entries[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.entries[namespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
	s.mu.Unlock()

	s.publish(models.Change{Namespace: namespace, Key: key})
	return nil
}

func (s *MemoryKVStore) Delete(ctx context.Context, namespace, key string) error {
	s.mu.Lock()
	_, existed := s.entries[namespace][key]
	delete(s.entries[namespace], key)
	s.mu.Unlock()

	if existed {
		s.publish(models.Change{Namespace: namespace, Key: key, Deleted: true})
	}
	return nil
}
