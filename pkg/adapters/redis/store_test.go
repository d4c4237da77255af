package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller/pkg/adapters/redis"
	"github.com/felixlaga/atmodeller/pkg/output"
	"github.com/felixlaga/atmodeller/pkg/ports"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)
	return backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	ports.RunSolutionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	rec := &output.Record{
		Keys:     []string{"H2_g"},
		Values:   map[string][]float64{"H2_g": {71.5}},
		Metadata: []output.Metadata{{Converged: true}},
	}
	require.NoError(t, store.Save(ctx, "case-ttl", rec))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "case-ttl")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "case-ttl")
	assert.ErrorIs(t, err, ports.ErrSolutionNotFound)

	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, "case-ttl")
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	rec := &output.Record{
		Keys:     []string{"H2_g"},
		Values:   map[string][]float64{"H2_g": {71.5}},
		Metadata: []output.Metadata{{Converged: true}},
	}
	require.NoError(t, store.Save(ctx, "my-case", rec))

	assert.True(t, mr.Exists("custom:app:my-case"), "expected key with custom prefix to exist")

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "my-case")
}
