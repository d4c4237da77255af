package eos

import (
	"fmt"
	"math"
)

// DenseHydrogen approximates the Chabrier & Debras (2021) hydrogen
// equation of state with a two-parameter fit to the published table,
//
//	ln(phi) = (c1 / T) * P^c2
//
// calibrated over 1000-6000 K and up to ~1e6 bar. The full table resolves
// the molecular-to-metallic transition; the fit only carries the strongly
// super-ideal fugacity relevant for deep sub-Neptune atmospheres.
type DenseHydrogen struct {
	C1, C2 float64
	TMin   float64
}

// FugacityCoefficient implements ActivityModel.
func (m DenseHydrogen) FugacityCoefficient(temperatureK, pressureBar float64) (float64, error) {
	if temperatureK < m.TMin {
		return 0, fmt.Errorf("%w: T=%g K below %g K", ErrOutOfRange, temperatureK, m.TMin)
	}
	if pressureBar <= 0 {
		return 1.0, nil
	}
	lnPhi := m.C1 / temperatureK * math.Pow(pressureBar, m.C2)
	return math.Exp(lnPhi), nil
}

func newH2Chabrier21() DenseHydrogen {
	return DenseHydrogen{C1: 5.40, C2: 0.664, TMin: 1000.0}
}
