package solubility

import (
	"fmt"
	"math"
)

// Model computes the dissolved concentration of a species in the melt
// reservoir. The returned value is in ppm by weight; multiplying by the melt
// mass gives the dissolved mass the solver folds into the element balance.
type Model interface {
	// DissolvedPPMW returns the concentration at temperature (K), total
	// pressure (bar) and species fugacity (bar).
	DissolvedPPMW(temperatureK, pressureBar, fugacityBar float64) (float64, error)
}

// None is the insoluble model: zero concentration everywhere.
type None struct{}

// DissolvedPPMW implements Model.
func (None) DissolvedPPMW(temperatureK, pressureBar, fugacityBar float64) (float64, error) {
	return 0.0, nil
}

// PowerLaw is the common experimental parameterization
//
//	c [ppmw] = A * f^B
//
// with f the species fugacity in bar. Most published melt solubility laws
// reduce to this form over the calibrated fugacity range.
type PowerLaw struct {
	A, B float64
}

// DissolvedPPMW implements Model.
func (m PowerLaw) DissolvedPPMW(temperatureK, pressureBar, fugacityBar float64) (float64, error) {
	if fugacityBar < 0 {
		return 0, fmt.Errorf("solubility: negative fugacity %g bar", fugacityBar)
	}
	if fugacityBar == 0 {
		return 0, nil
	}
	return m.A * math.Pow(fugacityBar, m.B), nil
}

// Models returns the named solubility model registry. The map is rebuilt on
// each call so callers may not mutate shared state.
func Models() map[string]Model {
	return map[string]Model{
		"none": None{},
		// Sossi et al. (2023), H2O in peridotite melt.
		"H2O_peridotite_sossi23": PowerLaw{A: 647.0, B: 0.5},
		// Dixon et al. (1995), CO2 in basalt; linear in fugacity.
		"CO2_basalt_dixon95": PowerLaw{A: 0.457, B: 1.0},
		// Hirschmann et al. (2012), H2 in basaltic melt.
		"H2_basalt_hirschmann12": PowerLaw{A: 0.11, B: 0.9},
	}
}
