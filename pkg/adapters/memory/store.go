// Package memory provides an in-process solution cache.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixlaga/atmodeller/pkg/output"
	"github.com/felixlaga/atmodeller/pkg/ports"
)

// Store implements ports.SolutionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the record in memory. The record is serialized so the
// caller cannot mutate stored data through retained pointers.
func (s *Store) Save(ctx context.Context, key string, rec *output.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, key string) (*output.Record, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ports.ErrSolutionNotFound
	}
	var rec output.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the cached keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
