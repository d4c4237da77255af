package eos

import (
	"fmt"
	"math"
)

// BeattieBridgeman is a truncated-virial activity model built from
// Beattie-Bridgeman equation-of-state constants, after Holley, Worlton &
// Zeigler (1958). The second virial coefficient is
//
//	B(T) = B0 - A0/(R T) - c/T^3   [L/mol]
//
// and the fugacity coefficient follows from ln(phi) = B(T) P / (R T).
// The truncation is adequate for the low-density regime the source tables
// cover (roughly below a few hundred bar).
type BeattieBridgeman struct {
	// A0 [L^2 atm / mol^2], B0 [L / mol], C [L K^3 / mol].
	A0, B0, C float64
	// TMin, TMax bound the calibrated temperature range in K.
	TMin, TMax float64
}

// FugacityCoefficient implements ActivityModel.
func (m BeattieBridgeman) FugacityCoefficient(temperatureK, pressureBar float64) (float64, error) {
	if temperatureK < m.TMin || temperatureK > m.TMax {
		return 0, fmt.Errorf("%w: T=%g K outside [%g, %g]", ErrOutOfRange, temperatureK, m.TMin, m.TMax)
	}
	if pressureBar < 0 {
		return 0, fmt.Errorf("%w: negative pressure %g bar", ErrOutOfRange, pressureBar)
	}
	rt := rLAtm * temperatureK
	b := m.B0 - m.A0/rt - m.C/(temperatureK*temperatureK*temperatureK)
	lnPhi := b * pressureBar * atmPerBar / rt
	return math.Exp(lnPhi), nil
}

// newH2BeattieHolley58 returns the hydrogen model with the constants
// tabulated by Holley et al. (1958).
func newH2BeattieHolley58() BeattieBridgeman {
	return BeattieBridgeman{
		A0:   0.1975,
		B0:   0.02096,
		C:    504.0,
		TMin: 273.15,
		TMax: 1500.0,
	}
}
