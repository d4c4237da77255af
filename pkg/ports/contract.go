package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller/pkg/output"
)

// RunSolutionStoreContract runs a suite of tests to verify that a
// SolutionStore implementation adheres to the interface contract.
func RunSolutionStoreContract(t *testing.T, store SolutionStore) {
	ctx := context.Background()
	key := "contract-test-solution-" + time.Now().Format("20060102150405")

	rec := &output.Record{
		Keys: []string{"H2_g", "H2O_g"},
		Values: map[string][]float64{
			"H2_g":  {71.5},
			"H2O_g": {32.77},
		},
		Pressure: map[string][]float64{
			"H2_g":  {71.5},
			"H2O_g": {32.77},
		},
		Activity: map[string][]float64{
			"H2_g":  {71.9},
			"H2O_g": {32.8},
		},
		CondMass: map[string][]float64{"H2_g": {0}, "H2O_g": {0}},
		DissMass: map[string][]float64{"H2_g": {1.1e18}, "H2O_g": {8.2e20}},
		Metadata: []output.Metadata{{Converged: true, ResidualNorm: 3e-12, Iterations: 9, Attempts: 1}},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, key, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Keys, loaded.Keys)
		assert.InDelta(t, 71.5, loaded.Values["H2_g"][0], 1e-12)
		require.Len(t, loaded.Metadata, 1)
		assert.True(t, loaded.Metadata[0].Converged)
		assert.Equal(t, 9, loaded.Metadata[0].Iterations)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, ErrSolutionNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := &output.Record{
			Keys:     []string{"H2_g"},
			Values:   map[string][]float64{"H2_g": {70.0}},
			Metadata: []output.Metadata{{Converged: true}},
		}
		require.NoError(t, store.Save(ctx, key, updated))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"H2_g"}, loaded.Keys)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, rec))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, ErrSolutionNotFound, "Load after Delete should return ErrSolutionNotFound")

		// Deleting again must stay silent.
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, store.Save(ctx, id1, rec))
		require.NoError(t, store.Save(ctx, id2, rec))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
