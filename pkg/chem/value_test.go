package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Broadcast(t *testing.T) {
	s := Scalar(3.5)
	assert.Equal(t, 3.5, s.At(0))
	assert.Equal(t, 3.5, s.At(7))

	v := Value{1, 2, 3}
	assert.Equal(t, 2.0, v.At(1))
}

func TestBatchLen(t *testing.T) {
	n, err := BatchLen(Scalar(1), Scalar(2))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = BatchLen(Scalar(1), Value{1, 2, 3}, Value{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = BatchLen(Value{1, 2}, Value{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = BatchLen(Value{})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPlanet_Defaults(t *testing.T) {
	p := NewPlanet()
	inst := p.Instance(0)
	assert.Equal(t, 2000.0, inst.SurfaceTemperature)
	assert.InDelta(t, 9.82, inst.SurfaceGravity, 0.05)
	assert.InDelta(t, 5.1e14, inst.SurfaceArea, 1e13)

	// Zero value takes all defaults.
	var zero Planet
	n, err := zero.BatchLen()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, EarthMantleMeltMass, zero.Instance(0).MantleMeltMass)
}

func TestPlanet_Batch(t *testing.T) {
	p := Planet{
		SurfaceTemperature: Value{1800, 2200, 2600},
		PlanetMass:         Scalar(4 * EarthMass),
	}
	n, err := p.BatchLen()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	inst := p.Instance(2)
	assert.Equal(t, 2600.0, inst.SurfaceTemperature)
	assert.Equal(t, 4*EarthMass, inst.PlanetMass)

	p.MantleMeltMass = Value{1, 2}
	_, err = p.BatchLen()
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestEarthOceansToHydrogenMass(t *testing.T) {
	// One ocean of water carries about 11.2% hydrogen by mass.
	m := EarthOceansToHydrogenMass(1)
	assert.InDelta(t, 1.566e20, m, 2e18)
	assert.Equal(t, 2*m, EarthOceansToHydrogenMass(2))
}
