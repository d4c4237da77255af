package thermo

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a species has no formation-energy entry.
var ErrNoData = errors.New("thermo: no formation data for species")

// ErrTemperatureRange is returned when a temperature falls outside the
// tabulated grid.
var ErrTemperatureRange = errors.New("thermo: temperature outside tabulated range")

// gibbsGrid is the shared temperature grid in K.
var gibbsGrid = []float64{298.15, 500, 1000, 1500, 2000, 2500, 3000, 3500, 4000}

// formationGibbs maps species name to standard Gibbs free energy of
// formation on gibbsGrid, in kJ/mol (JANAF tables, 1 bar standard state).
// Reference-state elements are identically zero and listed explicitly so a
// lookup distinguishes "reference species" from "missing data".
var formationGibbs = map[string][]float64{
	"H2_g": {0, 0, 0, 0, 0, 0, 0, 0, 0},
	"O2_g": {0, 0, 0, 0, 0, 0, 0, 0, 0},
	"N2_g": {0, 0, 0, 0, 0, 0, 0, 0, 0},
	"He_g": {0, 0, 0, 0, 0, 0, 0, 0, 0},

	"H2O_g": {-228.582, -219.051, -192.590, -164.376, -135.528, -106.416, -77.163, -47.820, -18.422},
	"CO_g":  {-137.163, -155.414, -200.275, -243.740, -286.034, -327.356, -367.816, -407.497, -446.453},
	"CO2_g": {-394.389, -394.939, -395.886, -396.333, -396.410, -396.152, -395.562, -394.684, -393.542},
	"CH4_g": {-50.768, -32.741, 19.492, 74.918, 130.802, 186.622, 242.332, 297.765, 352.910},
	"NH3_g": {-16.367, 4.800, 61.910, 119.017, 175.904, 232.420, 288.513, 344.162, 399.367},

	// Silicon species referenced to Si(cr,l) and O2(g).
	"OSi_g":  {-126.362, -135.240, -156.893, -176.090, -193.118, -208.600, -222.912, -236.282, -248.866},
	"H4Si_g": {56.900, 88.070, 166.920, 245.900, 324.280, 401.990, 479.030, 555.430, 631.220},
	"O2Si_l": {-850.700, -824.510, -761.010, -699.030, -638.070, -578.030, -518.850, -460.480, -402.870},
}

// FormationGibbs returns the standard Gibbs free energy of formation of a
// species in J/mol at temperature T (K), interpolated linearly on the grid.
func FormationGibbs(species string, temperatureK float64) (float64, error) {
	table, ok := formationGibbs[species]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoData, species)
	}
	grid := gibbsGrid
	if temperatureK < grid[0] || temperatureK > grid[len(grid)-1] {
		return 0, fmt.Errorf("%w: %g K for %q (grid %g-%g K)",
			ErrTemperatureRange, temperatureK, species, grid[0], grid[len(grid)-1])
	}
	// Locate the bracketing interval.
	hi := 1
	for hi < len(grid)-1 && grid[hi] < temperatureK {
		hi++
	}
	lo := hi - 1
	frac := (temperatureK - grid[lo]) / (grid[hi] - grid[lo])
	kj := table[lo] + frac*(table[hi]-table[lo])
	return kj * 1000.0, nil
}

// HasFormationData reports whether a species has a formation-energy entry.
func HasFormationData(species string) bool {
	_, ok := formationGibbs[species]
	return ok
}
