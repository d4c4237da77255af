package atmodeller_test

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller"
	"github.com/felixlaga/atmodeller/internal/testutils"
	"github.com/felixlaga/atmodeller/pkg/adapters/memory"
	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/eos"
	"github.com/felixlaga/atmodeller/pkg/observability"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

// hydrogenOxygenModel is a hydrogen atmosphere over molten iron-bearing rock:
// one Earth ocean of hydrogen, oxygen pinned to the iron-wustite buffer.
func hydrogenOxygenModel(t *testing.T, opts ...atmodeller.Option) *atmodeller.InteriorAtmosphere {
	t.Helper()
	h2o := testutils.MustGas(t, "H2O_g")
	h2 := testutils.MustGas(t, "H2_g", chem.WithActivity(eos.Models()["H2_beattie_holley58"]))
	o2 := testutils.MustGas(t, "O2_g")

	c, err := chem.NewCollection(h2o, h2, o2)
	require.NoError(t, err)
	ia, err := atmodeller.New(c, opts...)
	require.NoError(t, err)
	return ia
}

func hydrogenOxygenRequest() *atmodeller.SolveRequest {
	planet := chem.NewPlanet()
	planet.SurfaceTemperature = chem.Scalar(1000.0)
	return &atmodeller.SolveRequest{
		Planet: planet,
		MassConstraints: map[string]chem.Value{
			"H": chem.Scalar(chem.EarthOceansToHydrogenMass(1)),
		},
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{},
		},
	}
}

func TestSolve_HydrogenOxygen(t *testing.T) {
	ia := hydrogenOxygenModel(t)
	out, err := ia.Solve(context.Background(), hydrogenOxygenRequest())
	require.NoError(t, err)
	require.True(t, out.AllConverged())
	require.Equal(t, 1, out.BatchLen())

	pH2O, ok := out.PartialPressure("H2O_g")
	require.True(t, ok)
	pH2, ok := out.PartialPressure("H2_g")
	require.True(t, ok)
	pO2, ok := out.PartialPressure("O2_g")
	require.True(t, ok)

	// Oxygen sits exactly on the buffer; the hydrogen split between steam
	// and H2 follows from the water equilibrium and the ocean inventory.
	assert.InEpsilon(t, 1.525466019972294e-21, pO2[0], 1e-6)
	assert.InEpsilon(t, 32.77, pH2O[0], 0.02)
	assert.InEpsilon(t, 71.50, pH2[0], 0.02)

	// The non-ideal hydrogen carries an activity entry in the quick look.
	keys := out.QuickLookKeys()
	assert.Equal(t, []string{"H2O_g", "H2_g", "H2_g_activity", "O2_g"}, keys)
	aH2, ok := out.Activity("H2_g")
	require.True(t, ok)
	assert.Greater(t, aH2[0], pH2[0])
}

func TestSolve_SubNeptuneBatch(t *testing.T) {
	h2 := testutils.MustGas(t, "H2_g", chem.WithActivity(eos.Models()["H2_chabrier21"]))
	h2o := testutils.MustGas(t, "H2O_g")
	o2 := testutils.MustGas(t, "O2_g")
	c, err := chem.NewCollection(h2, h2o, o2)
	require.NoError(t, err)
	ia, err := atmodeller.New(c)
	require.NoError(t, err)

	req := &atmodeller.SolveRequest{
		Planet: chem.Planet{
			SurfaceTemperature: chem.Value{1800, 2200, 2600},
			PlanetMass:         chem.Scalar(4 * chem.EarthMass),
			SurfaceRadius:      chem.Scalar(1.6 * chem.EarthRadius),
			MantleMeltMass:     chem.Scalar(2 * chem.EarthMantleMeltMass),
		},
		MassConstraints: map[string]chem.Value{
			"H": chem.Scalar(chem.EarthOceansToHydrogenMass(50)),
		},
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{Shift: -2},
		},
	}

	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 3, out.BatchLen())
	require.True(t, out.AllConverged())

	pH2, ok := out.PartialPressure("H2_g")
	require.True(t, ok)
	require.Len(t, pH2, 3)
	for _, p := range pH2 {
		assert.Greater(t, p, 0.0)
	}

	// The buffer is hotter and more oxidized down the batch.
	pO2, _ := out.PartialPressure("O2_g")
	assert.Less(t, pO2[0], pO2[1])
	assert.Less(t, pO2[1], pO2[2])
}

func TestSolve_OxygenMassBatch(t *testing.T) {
	c, err := chem.NewCollection(
		testutils.MustGas(t, "H2_g"),
		testutils.MustGas(t, "H2O_g"),
		testutils.MustGas(t, "O2_g"),
		testutils.MustGas(t, "CO_g"),
		testutils.MustGas(t, "CO2_g"),
		testutils.MustGas(t, "CH4_g"),
	)
	require.NoError(t, err)
	ia, err := atmodeller.New(c)
	require.NoError(t, err)

	planet := chem.Planet{
		SurfaceTemperature: chem.Scalar(1800.0),
		PlanetMass:         chem.Scalar(4 * chem.EarthMass),
		SurfaceRadius:      chem.Scalar(1.6 * chem.EarthRadius),
	}
	req := &atmodeller.SolveRequest{
		Planet: planet,
		MassConstraints: map[string]chem.Value{
			"H": chem.Scalar(chem.EarthOceansToHydrogenMass(50)),
			"C": chem.Scalar(1e21),
			"O": chem.Value{6e20, 1.2e21, 2.4e21},
		},
	}

	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 3, out.BatchLen())

	meta := out.Metadata()
	for b, m := range meta {
		assert.True(t, m.Converged, "instance %d", b)
	}

	ql := out.QuickLook()
	for _, key := range out.QuickLookKeys() {
		assert.Len(t, ql[key], 3, key)
	}

	// Doubling the oxygen inventory oxidizes the atmosphere.
	pH2O, _ := out.PartialPressure("H2O_g")
	assert.Less(t, pH2O[0], pH2O[1])
	assert.Less(t, pH2O[1], pH2O[2])
}

func TestSolve_UpperBoundSaturation(t *testing.T) {
	c := testutils.MustCollection(t, "H2O_g", "H2_g", "O2_g")
	ia, err := atmodeller.New(c)
	require.NoError(t, err)

	planet := chem.NewPlanet()
	planet.SurfaceTemperature = chem.Scalar(1000.0)

	// Pin hydrogen to the fugacity whose log number density sits exactly on
	// the upper hypercube bound.
	lnKT := math.Log(chem.BoltzmannConstant * 1000 / chem.PascalsPerBar)
	req := &atmodeller.SolveRequest{
		Planet: planet,
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{},
			"H2_g": chem.ConstantFugacity{Value: math.Exp(70 + lnKT)},
		},
		Parameters: atmodeller.Parameters{BoundHigh: 70},
	}

	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	require.True(t, out.AllConverged())

	// Saturation is reported, not treated as a failure.
	meta := out.Metadata()[0]
	assert.True(t, meta.Converged)
	assert.True(t, meta.BoundarySaturated)
	assert.Equal(t, []string{"H2_g"}, meta.SaturatedSpecies)
}

func TestSolve_SilicateCondensation(t *testing.T) {
	c, err := chem.NewCollection(
		testutils.MustGas(t, "H2_g"),
		testutils.MustGas(t, "H2O_g"),
		testutils.MustGas(t, "O2_g"),
		testutils.MustGas(t, "H4Si_g"),
		testutils.MustGas(t, "OSi_g"),
		testutils.MustCondensed(t, "O2Si_l"),
	)
	require.NoError(t, err)
	ia, err := atmodeller.New(c)
	require.NoError(t, err)

	planet := chem.NewPlanet()
	planet.SurfaceTemperature = chem.Scalar(3400.0)

	req := &atmodeller.SolveRequest{
		Planet: planet,
		MassConstraints: map[string]chem.Value{
			"H":  chem.Scalar(2e21),
			"O":  chem.Scalar(1.2e23),
			"Si": chem.Scalar(1e23),
		},
		Parameters: atmodeller.Parameters{Multistart: 8},
	}

	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	require.True(t, out.AllConverged())

	// Silicon vapor pressure over the melt is bounded, so nearly all of the
	// silicon inventory remains condensed.
	cond, ok := out.CondensedMass("O2Si_l")
	require.True(t, ok)
	assert.Greater(t, cond[0], 1e22)

	// Condensates carry unit activity and no partial pressure.
	act, ok := out.Activity("O2Si_l")
	require.True(t, ok)
	assert.Equal(t, 1.0, act[0])
	pp, ok := out.PartialPressure("O2Si_l")
	require.True(t, ok)
	assert.Equal(t, 0.0, pp[0])

	// The quick look reports the condensed mass for the melt species.
	assert.Equal(t, cond[0], out.QuickLook()["O2Si_l"][0])
}

func TestSolve_CacheHit(t *testing.T) {
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	ia := hydrogenOxygenModel(t,
		atmodeller.WithSolutionStore(store),
		atmodeller.WithMetrics(metrics),
	)

	first, err := ia.Solve(context.Background(), hydrogenOxygenRequest())
	require.NoError(t, err)
	require.True(t, first.AllConverged())

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	second, err := ia.Solve(context.Background(), hydrogenOxygenRequest())
	require.NoError(t, err)
	assert.Equal(t, first.QuickLookKeys(), second.QuickLookKeys())
	assert.Equal(t, first.QuickLook(), second.QuickLook())
	assert.Equal(t, first.Metadata(), second.Metadata())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SolvesTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SolvesTotal.WithLabelValues("cached")))
}

func TestSolve_NoCacheWithoutConvergence(t *testing.T) {
	store := memory.NewStore()
	ia := hydrogenOxygenModel(t, atmodeller.WithSolutionStore(store))

	req := hydrogenOxygenRequest()
	req.Parameters = atmodeller.Parameters{Multistart: 1, MaxIter: 1}
	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, out.AllConverged())

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSolve_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	ia := hydrogenOxygenModel(t, atmodeller.WithMetrics(metrics))

	req := hydrogenOxygenRequest()
	req.Planet.SurfaceTemperature = chem.Value{900, 1000, 1100}
	out, err := ia.Solve(context.Background(), req)
	require.NoError(t, err)
	require.True(t, out.AllConverged())

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.InstancesTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SolvesTotal.WithLabelValues("converged")))
}

func TestSolve_ConstraintErrors(t *testing.T) {
	ia := hydrogenOxygenModel(t)

	req := hydrogenOxygenRequest()
	delete(req.MassConstraints, "H")
	_, err := ia.Solve(context.Background(), req)
	assert.ErrorIs(t, err, atmodeller.ErrConstraintCountMismatch)

	req = hydrogenOxygenRequest()
	req.MassConstraints["Fe"] = chem.Scalar(1e20)
	_, err = ia.Solve(context.Background(), req)
	assert.ErrorIs(t, err, atmodeller.ErrUnknownConstraint)
}
