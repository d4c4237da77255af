package eos

import (
	"fmt"
	"math"
)

// Gas constant in kJ/(mol K); CORK works in kJ, kbar units.
const rKJ = 8.31451e-3

const kbarPerBar = 1.0e-3

// mrkLnPhi evaluates the fugacity coefficient of a modified Redlich-Kwong
// gas with attraction parameter a [kJ^2 kbar^-1 K^0.5 mol^-2] and covolume
// b [kJ kbar^-1 mol^-1] at temperature T [K] and pressure P [kbar].
//
// The gas-root molar volume is obtained by successive substitution from the
// ideal start, which converges for the supercritical conditions the solver
// visits.
func mrkLnPhi(tK, pKbar, a, b float64) (float64, error) {
	rt := rKJ * tK
	sqrtT := math.Sqrt(tK)

	v := rt/pKbar + b
	for i := 0; i < 50; i++ {
		next := rt/(pKbar+a/(sqrtT*v*(v+b))) + b
		if math.Abs(next-v) < 1e-14*v {
			v = next
			break
		}
		v = next
	}
	if !(v > b) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: MRK volume iteration diverged (T=%g K, P=%g kbar)", ErrOutOfRange, tK, pKbar)
	}

	z := pKbar * v / rt
	lnPhi := z - 1 - math.Log(z*(1-b/v)) - a/(b*rKJ*tK*sqrtT)*math.Log(1+b/v)
	return lnPhi, nil
}

// CORK is the compensated Redlich-Kwong model of Holland & Powell: an MRK
// core with a temperature-dependent attraction term plus a virial-like
// volume correction above a threshold pressure P0.
type CORK struct {
	// A returns the MRK attraction parameter at temperature T [K].
	A func(tK float64) float64
	// B is the MRK covolume [kJ kbar^-1 mol^-1].
	B float64
	// C and D return the virial correction coefficients at T [K]; the
	// correction applies only above P0 [kbar]. Nil disables the correction.
	C, D func(tK float64) float64
	// P0 is the virial onset pressure [kbar].
	P0 float64
	// TMin bounds the calibrated range in K.
	TMin float64
}

// FugacityCoefficient implements ActivityModel.
func (m CORK) FugacityCoefficient(temperatureK, pressureBar float64) (float64, error) {
	if temperatureK < m.TMin {
		return 0, fmt.Errorf("%w: T=%g K below %g K", ErrOutOfRange, temperatureK, m.TMin)
	}
	p := pressureBar * kbarPerBar
	if p <= 0 {
		// The zero-pressure limit of any EOS is ideal.
		return 1.0, nil
	}
	lnPhi, err := mrkLnPhi(temperatureK, p, m.A(temperatureK), m.B)
	if err != nil {
		return 0, err
	}
	if m.C != nil && m.D != nil && p > m.P0 {
		dp := p - m.P0
		// Gibbs contribution of the virial volume correction, divided by RT.
		g := (2.0/3.0)*m.C(temperatureK)*dp*math.Sqrt(dp) + 0.5*m.D(temperatureK)*dp*dp
		lnPhi += g / (rKJ * temperatureK)
	}
	return math.Exp(lnPhi), nil
}

// newH2OCorkHolland98 returns the H2O model with the Holland & Powell (1998)
// supercritical coefficients.
func newH2OCorkHolland98() CORK {
	return CORK{
		A: func(tK float64) float64 {
			dt := tK - 673.0
			return 1113.4 - 0.22291*dt - 3.8022e-4*dt*dt + 1.7791e-7*dt*dt*dt
		},
		B:    1.465,
		C:    func(tK float64) float64 { return -3.025650e-2 - 5.343144e-6*tK },
		D:    func(tK float64) float64 { return -3.2297554e-3 + 2.2215221e-6*tK },
		P0:   2.0,
		TMin: 673.0,
	}
}

// newCO2CorkHolland98 returns the CO2 model with the Holland & Powell (1998)
// coefficients.
func newCO2CorkHolland98() CORK {
	return CORK{
		A: func(tK float64) float64 {
			return 741.2 - 0.10891*tK - 3.4203e-4*tK*tK
		},
		B:    3.057,
		C:    func(tK float64) float64 { return -2.26924e-1 - 7.73793e-5*tK },
		D:    func(tK float64) float64 { return 1.33790e-2 - 1.01740e-5*tK },
		P0:   5.0,
		TMin: 304.2,
	}
}

// CorrespondingStates is the corresponding-states form of the CORK model
// (Holland & Powell 1991): MRK parameters derived from the critical point of
// the species alone.
type CorrespondingStates struct {
	// Tc [K] and Pc [kbar] locate the critical point.
	Tc, Pc float64
}

// FugacityCoefficient implements ActivityModel.
func (m CorrespondingStates) FugacityCoefficient(temperatureK, pressureBar float64) (float64, error) {
	p := pressureBar * kbarPerBar
	if p <= 0 {
		return 1.0, nil
	}
	// Universal coefficients from Holland & Powell (1991), eq. 9.
	a := 5.45963e-5*math.Pow(m.Tc, 2.5)/m.Pc - 8.63920e-6*math.Pow(m.Tc, 1.5)/m.Pc*temperatureK
	// Guard against the attraction term changing sign far above Tc.
	if a < 0 {
		a = 0
	}
	b := 9.18301e-4 * m.Tc / m.Pc
	lnPhi, err := mrkLnPhi(temperatureK, p, a, b)
	if err != nil {
		return 0, err
	}
	return math.Exp(lnPhi), nil
}
