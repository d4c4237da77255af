package eos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeal(t *testing.T) {
	phi, err := Ideal{}.FugacityCoefficient(300, 1e4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, phi)
}

func TestBeattieBridgeman_H2(t *testing.T) {
	m := newH2BeattieHolley58()

	// Hydrogen is super-ideal at high temperature: positive B, phi > 1,
	// increasing with pressure.
	phi100, err := m.FugacityCoefficient(1000, 100)
	require.NoError(t, err)
	assert.Greater(t, phi100, 1.0)
	assert.Less(t, phi100, 1.2)

	phi500, err := m.FugacityCoefficient(1000, 500)
	require.NoError(t, err)
	assert.Greater(t, phi500, phi100)

	// Zero pressure is the ideal limit.
	phi0, err := m.FugacityCoefficient(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, phi0)

	_, err = m.FugacityCoefficient(100, 100)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = m.FugacityCoefficient(2000, 100)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = m.FugacityCoefficient(1000, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDenseHydrogen(t *testing.T) {
	m := newH2Chabrier21()

	phi, err := m.FugacityCoefficient(3000, 1e4)
	require.NoError(t, err)
	assert.Greater(t, phi, 1.0)

	// Hotter gas is closer to ideal at fixed pressure.
	cooler, err := m.FugacityCoefficient(1500, 1e4)
	require.NoError(t, err)
	assert.Greater(t, cooler, phi)

	phi0, err := m.FugacityCoefficient(3000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, phi0)

	_, err = m.FugacityCoefficient(500, 1e4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestCork_H2O(t *testing.T) {
	m := newH2OCorkHolland98()

	// Steam at magma-ocean conditions is sub-ideal at moderate pressure.
	phi, err := m.FugacityCoefficient(1500, 1000)
	require.NoError(t, err)
	assert.Greater(t, phi, 0.0)
	assert.NotEqual(t, 1.0, phi)

	// Low pressure approaches the ideal limit.
	phiLow, err := m.FugacityCoefficient(1500, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, phiLow, 0.05)
}

func TestCorrespondingStates_Monotonic(t *testing.T) {
	m := CorrespondingStates{Tc: 126.2, Pc: 0.0339} // N2

	phi1, err := m.FugacityCoefficient(1500, 100)
	require.NoError(t, err)
	phi2, err := m.FugacityCoefficient(1500, 2000)
	require.NoError(t, err)
	assert.Greater(t, phi2, phi1)
	assert.Greater(t, phi1, 0.9)
}

func TestModels_Registry(t *testing.T) {
	m := Models()
	for _, name := range []string{
		"ideal",
		"H2_beattie_holley58",
		"H2_chabrier21",
		"H2O_cork_holland98",
		"CO2_cork_holland98",
		"H2_cork_cs_holland91",
		"CO_cork_cs_holland91",
		"CH4_cork_cs_holland91",
		"S2_cork_cs_holland91",
		"N2_cork_cs_holland91",
	} {
		assert.Contains(t, m, name)
	}

	// The registry hands out fresh maps.
	delete(m, "ideal")
	assert.Contains(t, Models(), "ideal")
}
