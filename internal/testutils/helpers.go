// Package testutils provides shared fixtures for solver tests.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller/pkg/chem"
)

// MustGas builds a gas species, failing the test on a bad formula.
func MustGas(t *testing.T, name string, opts ...chem.SpeciesOption) chem.Species {
	t.Helper()
	sp, err := chem.CreateGas(name, opts...)
	require.NoError(t, err, "failed to create gas species %s", name)
	return sp
}

// MustCondensed builds a condensed species, failing the test on a bad formula.
func MustCondensed(t *testing.T, name string, opts ...chem.SpeciesOption) chem.Species {
	t.Helper()
	sp, err := chem.CreateCondensed(name, opts...)
	require.NoError(t, err, "failed to create condensed species %s", name)
	return sp
}

// MustCollection builds a collection of gas species by name. Species needing
// options should be constructed explicitly with MustGas.
func MustCollection(t *testing.T, names ...string) *chem.Collection {
	t.Helper()
	species := make([]chem.Species, len(names))
	for i, name := range names {
		species[i] = MustGas(t, name)
	}
	c, err := chem.NewCollection(species...)
	require.NoError(t, err, "failed to build collection")
	return c
}
