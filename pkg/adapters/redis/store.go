// Package redis provides a Redis-backed solution cache, suitable for
// sharing solved cases between processes.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/felixlaga/atmodeller/pkg/output"
	"github.com/felixlaga/atmodeller/pkg/ports"
)

const defaultPrefix = "atmodeller:solution:"

// Store implements ports.SolutionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix. The default is "atmodeller:solution:".
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets an expiration on cached solutions. Zero (the default) means
// records never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewFromClient creates a Store on an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a Store connected to the given address.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// Save persists the record under the prefixed key.
func (s *Store) Save(ctx context.Context, key string, rec *output.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal solution record: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving solution: %w", err)
	}
	return nil
}

// Load retrieves the record for a key.
func (s *Store) Load(ctx context.Context, key string) (*output.Record, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == backend.Nil {
		return nil, ports.ErrSolutionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading solution: %w", err)
	}
	var rec output.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal solution record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record for a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis error deleting solution: %w", err)
	}
	return nil
}

// List scans for cached keys under the prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis error listing solutions: %w", err)
	}
	return keys, nil
}
