package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller/internal/engine"
	"github.com/felixlaga/atmodeller/internal/testutils"
	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/reaction"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

func waterProblem(t *testing.T) *engine.Problem {
	t.Helper()
	c := testutils.MustCollection(t, "H2O_g", "H2_g", "O2_g")
	nw, err := reaction.NewNetwork(c)
	require.NoError(t, err)

	planet := chem.NewPlanet()
	planet.SurfaceTemperature = chem.Scalar(1000.0)

	return &engine.Problem{
		Species: c,
		Network: nw,
		Planet:  planet,
		MassConstraints: map[string]chem.Value{
			"H": chem.Scalar(chem.EarthOceansToHydrogenMass(1)),
		},
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{},
		},
	}
}

func TestSolve_WaterSystem(t *testing.T) {
	prob := waterProblem(t)
	res, err := engine.Solve(context.Background(), prob)
	require.NoError(t, err)
	require.Len(t, res.Instances, 1)
	require.True(t, res.AllConverged())

	inst := &res.Instances[0]
	assert.LessOrEqual(t, inst.ResidualNorm, engine.DefaultTol)
	assert.Equal(t, 1000.0, inst.Temperature)

	pH2O := inst.PartialPressure[0]
	pH2 := inst.PartialPressure[1]
	pO2 := inst.PartialPressure[2]

	// The buffered species lands exactly on the buffer.
	assert.InEpsilon(t, 1.525466019972294e-21, pO2, 1e-6)

	// Mass action: ln(p_H2O^2 / (p_H2^2 p_O2)) = lnK from the Gibbs tables.
	gH2O, err := thermo.FormationGibbs("H2O_g", 1000)
	require.NoError(t, err)
	lnK := -2 * gH2O / (chem.GasConstant * 1000)
	lhs := 2*math.Log(pH2O) - 2*math.Log(pH2) - math.Log(pO2)
	assert.InDelta(t, lnK, lhs, 1e-6)

	// Element balance: the hydrogen column holds one ocean of hydrogen.
	planet := prob.Planet.Instance(0)
	colMolPerBar := planet.SurfaceArea * chem.PascalsPerBar / (planet.SurfaceGravity * inst.MeanMolarMass)
	aH, _ := chem.AtomicMass("H")
	hMass := colMolPerBar * aH * (2*pH2O + 2*pH2)
	assert.InEpsilon(t, chem.EarthOceansToHydrogenMass(1), hMass, 1e-6)

	// Total pressure is the gas sum.
	assert.InDelta(t, pH2O+pH2+pO2, inst.TotalPressure, 1e-9)
}

func TestSolve_Deterministic(t *testing.T) {
	run := func() []float64 {
		prob := waterProblem(t)
		prob.Params = engine.Parameters{Multistart: 6, Seed: 7}
		res, err := engine.Solve(context.Background(), prob)
		require.NoError(t, err)
		require.True(t, res.AllConverged())
		return res.Instances[0].X
	}
	assert.Equal(t, run(), run())
}

func TestSolve_Batch(t *testing.T) {
	prob := waterProblem(t)
	prob.Planet.SurfaceTemperature = chem.Value{900, 1000, 1100}
	res, err := engine.Solve(context.Background(), prob)
	require.NoError(t, err)
	require.Len(t, res.Instances, 3)
	require.True(t, res.AllConverged())

	// Hotter instances sit on a more oxidized buffer.
	assert.Less(t, res.Instances[0].PartialPressure[2], res.Instances[1].PartialPressure[2])
	assert.Less(t, res.Instances[1].PartialPressure[2], res.Instances[2].PartialPressure[2])

	// The middle instance matches a standalone single solve.
	single, err := engine.Solve(context.Background(), waterProblem(t))
	require.NoError(t, err)
	assert.Equal(t, single.Instances[0].X, res.Instances[1].X)
}

func TestSolve_ConstraintCountMismatch(t *testing.T) {
	prob := waterProblem(t)
	delete(prob.MassConstraints, "H")
	_, err := engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, engine.ErrConstraintCountMismatch)
}

func TestSolve_UnknownConstraint(t *testing.T) {
	prob := waterProblem(t)
	prob.MassConstraints["Fe"] = chem.Scalar(1e20)
	_, err := engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, engine.ErrUnknownConstraint)

	prob = waterProblem(t)
	prob.FugacityConstraints["CO2_g"] = chem.ConstantFugacity{Value: 1}
	_, err = engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, engine.ErrUnknownConstraint)
}

func TestSolve_FugacityOnCondensed(t *testing.T) {
	sio2, err := chem.CreateCondensed("O2Si_l")
	require.NoError(t, err)
	o2 := testutils.MustGas(t, "O2_g")
	osi := testutils.MustGas(t, "OSi_g")

	c, err := chem.NewCollection(sio2, o2, osi)
	require.NoError(t, err)
	nw, err := reaction.NewNetwork(c)
	require.NoError(t, err)

	prob := &engine.Problem{
		Species: c,
		Network: nw,
		Planet:  chem.NewPlanet(),
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2Si_l": chem.ConstantFugacity{Value: 1},
			"O2_g":   thermo.IronWustiteBuffer{},
		},
	}
	_, err = engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, engine.ErrInvalidConstraint)
}

func TestSolve_InvalidMassTarget(t *testing.T) {
	prob := waterProblem(t)
	prob.MassConstraints["H"] = chem.Scalar(-1)
	_, err := engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, engine.ErrInvalidConstraint)
}

func TestSolve_ShapeMismatch(t *testing.T) {
	prob := waterProblem(t)
	prob.Planet.SurfaceTemperature = chem.Value{1000, 1100}
	prob.MassConstraints["H"] = chem.Value{1e20, 1e20, 1e20}
	_, err := engine.Solve(context.Background(), prob)
	assert.ErrorIs(t, err, chem.ErrShapeMismatch)
}

func TestSolve_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Solve(ctx, waterProblem(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	a, err := waterProblem(t).Fingerprint()
	require.NoError(t, err)
	b, err := waterProblem(t).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	prob := waterProblem(t)
	prob.Params.Seed = 99
	c, err := prob.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	prob = waterProblem(t)
	prob.MassConstraints["H"] = chem.Scalar(2e20)
	d, err := prob.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}
