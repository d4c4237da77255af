package ports

import (
	"context"
	"errors"

	"github.com/felixlaga/atmodeller/pkg/output"
)

// ErrSolutionNotFound is returned by Load when no solution is cached under
// the given key.
var ErrSolutionNotFound = errors.New("solution not found")

// SolutionStore caches solved outputs keyed by problem fingerprint. The
// solver is deterministic, so a cached record is interchangeable with a
// fresh solve of the same fingerprint.
type SolutionStore interface {
	// Save persists the record under the given key, overwriting any
	// previous entry.
	Save(ctx context.Context, key string, rec *output.Record) error

	// Load retrieves the record for a key.
	// Returns ErrSolutionNotFound if the key is absent.
	Load(ctx context.Context, key string) (*output.Record, error)

	// Delete removes the record for a key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// List returns the cached keys, in no particular order.
	List(ctx context.Context) ([]string, error)
}
