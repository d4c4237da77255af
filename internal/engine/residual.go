package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/eos"
	"github.com/felixlaga/atmodeller/pkg/solubility"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

// system is the residual function of one batch instance. The state vector
// stores the natural log of number density (molecules per cubic meter), one
// entry per species in collection order, so trial states can never imply
// negative pressures.
type system struct {
	prob *Problem
	inst chem.PlanetInstance

	gas  []bool
	mu   []float64 // kg/mol per species
	lnKT float64   // ln(kB*T/1e5): log number density to log pressure in bar

	lnK []float64 // per reaction at the instance temperature

	massElements []string
	massAtomic   []float64
	massTargets  []float64 // kg, per constrained element

	fugSpecies []int
	fugCons    []chem.FugacityConstraint
}

// newSystem resolves the instance-level quantities: temperature-dependent
// equilibrium constants and scalar constraint targets.
func newSystem(p *Problem, a *assembled, instance int) (*system, error) {
	inst := p.Planet.Instance(instance)
	t := inst.SurfaceTemperature

	n := p.Species.Len()
	s := &system{
		prob: p,
		inst: inst,
		gas:  make([]bool, n),
		mu:   make([]float64, n),
		lnKT: math.Log(chem.BoltzmannConstant * t / chem.PascalsPerBar),
	}
	for i := 0; i < n; i++ {
		sp := p.Species.At(i)
		s.gas[i] = sp.Phase() == chem.PhaseGas
		s.mu[i] = sp.MolarMass()
	}

	// lnK_j = -sum_i nu_ji * dGf_i / (R T).
	nw := p.Network
	s.lnK = make([]float64, nw.NumReactions())
	for j := range s.lnK {
		var dg float64
		for i := 0; i < n; i++ {
			nu := nw.Stoichiometry(j, i)
			if nu == 0 {
				continue
			}
			g, err := thermo.FormationGibbs(p.Species.At(i).Name(), t)
			if err != nil {
				return nil, fmt.Errorf("engine: %w", err)
			}
			dg += float64(nu) * g
		}
		s.lnK[j] = -dg / (chem.GasConstant * t)
	}

	s.massElements = a.massElements
	s.massAtomic = make([]float64, len(a.massElements))
	s.massTargets = make([]float64, len(a.massElements))
	for k, symbol := range a.massElements {
		m, _ := chem.AtomicMass(symbol)
		s.massAtomic[k] = m
		target := a.massTargets[k].At(instance)
		if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
			return nil, fmt.Errorf("%w: mass target %g kg for element %q", ErrInvalidConstraint, target, symbol)
		}
		s.massTargets[k] = target
	}

	s.fugSpecies = a.fugSpecies
	s.fugCons = a.fugCons
	return s, nil
}

// dim returns the residual/state dimension.
func (s *system) dim() int { return len(s.gas) }

// point holds the shared intermediates of one residual evaluation.
type point struct {
	p       []float64 // bar; gas partial pressure, condensed equivalent pressure
	ptot    float64   // bar, gas only
	mubar   float64   // kg/mol, gas only
	lnPhi   []float64
	dLnPhi  []float64 // d lnPhi / d Ptot
	colMol  float64   // mol per bar of column
	totMass []float64 // kg per constrained element
}

// eval computes the residual vector, and the Jacobian when J is non-nil.
// The derivative is analytic in the ideal terms; pluggable model terms
// contribute through centered numeric derivatives of the model functions.
func (s *system) eval(x []float64, r []float64, J *mat.Dense) error {
	n := s.dim()
	t := s.inst.SurfaceTemperature

	pt := point{
		p:      make([]float64, n),
		lnPhi:  make([]float64, n),
		dLnPhi: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		pt.p[i] = math.Exp(x[i] + s.lnKT)
		if s.gas[i] {
			pt.ptot += pt.p[i]
		}
	}
	var muSum float64
	for i := 0; i < n; i++ {
		if s.gas[i] {
			muSum += pt.p[i] * s.mu[i]
		}
	}
	pt.mubar = muSum / pt.ptot
	pt.colMol = s.inst.SurfaceArea * chem.PascalsPerBar / (s.inst.SurfaceGravity * pt.mubar)

	wantJac := J != nil
	for i := 0; i < n; i++ {
		sp := s.prob.Species.At(i)
		lnPhi, dLnPhi, err := modelLogDeriv(sp.Activity(), t, pt.ptot, wantJac)
		if err != nil {
			return fmt.Errorf("%w: activity of %q: %v", ErrInvalidModelOutput, sp.Name(), err)
		}
		pt.lnPhi[i] = lnPhi
		pt.dLnPhi[i] = dLnPhi
	}

	nw := s.prob.Network
	nr := nw.NumReactions()

	if wantJac {
		J.Zero()
	}

	// Reaction equilibrium rows.
	for j := 0; j < nr; j++ {
		var sum float64
		var dPhiSum float64 // sum_i nu_ji dlnPhi_i, shared by all gas columns
		for i := 0; i < n; i++ {
			nu := nw.Stoichiometry(j, i)
			if nu == 0 {
				continue
			}
			sum += float64(nu) * s.logActivity(&pt, x, i)
			dPhiSum += float64(nu) * pt.dLnPhi[i]
		}
		r[j] = sum - s.lnK[j]
		if wantJac {
			for k := 0; k < n; k++ {
				var d float64
				if nu := nw.Stoichiometry(j, k); nu != 0 && s.gas[k] {
					d += float64(nu)
				}
				if s.gas[k] {
					d += dPhiSum * pt.p[k]
				}
				J.Set(j, k, d)
			}
		}
	}

	// Elemental mass rows.
	row := nr
	for e := range s.massElements {
		total, grad, err := s.elementMass(&pt, x, e, wantJac)
		if err != nil {
			return err
		}
		r[row] = math.Log(total) - math.Log(s.massTargets[e])
		if wantJac {
			for k := 0; k < n; k++ {
				J.Set(row, k, grad[k]/total)
			}
		}
		row++
	}

	// Fugacity rows.
	for fi, i := range s.fugSpecies {
		target, dTarget, err := fugacityTargetDeriv(s.fugCons[fi], t, pt.ptot, wantJac)
		if err != nil {
			return fmt.Errorf("%w: fugacity target for %q: %v",
				ErrInvalidModelOutput, s.prob.Species.At(i).Name(), err)
		}
		r[row] = x[i] + s.lnKT + pt.lnPhi[i] - math.Log(target)
		if wantJac {
			for k := 0; k < n; k++ {
				var d float64
				if k == i {
					d += 1
				}
				if s.gas[k] {
					d += (pt.dLnPhi[i] - dTarget) * pt.p[k]
				}
				J.Set(row, k, d)
			}
		}
		row++
	}
	return nil
}

// logActivity returns ln a_i: log fugacity in bar for a gas, log activity for
// a condensate.
func (s *system) logActivity(pt *point, x []float64, i int) float64 {
	if s.gas[i] {
		return x[i] + s.lnKT + pt.lnPhi[i]
	}
	return pt.lnPhi[i]
}

// elementMass computes the total mass of constrained element e in kg, and
// when wantJac is set, its gradient with respect to the state vector.
func (s *system) elementMass(pt *point, x []float64, e int, wantJac bool) (float64, []float64, error) {
	n := s.dim()
	nw := s.prob.Network
	t := s.inst.SurfaceTemperature
	ae := s.massAtomic[e]
	melt := s.inst.MantleMeltMass

	// Row index of the element in the composition matrix.
	erow := -1
	for idx, symbol := range nw.Elements() {
		if symbol == s.massElements[e] {
			erow = idx
			break
		}
	}

	var total float64
	var grad []float64
	if wantJac {
		grad = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		c := nw.Composition(erow, i)
		if c == 0 {
			continue
		}
		coeff := float64(c) * ae

		// Column inventory: gases and condensates share the hydrostatic
		// column conversion; condensates do not enter mubar or Ptot.
		molCol := pt.p[i] * pt.colMol
		total += coeff * molCol
		if wantJac {
			grad[i] += coeff * molCol
			for k := 0; k < n; k++ {
				if !s.gas[k] {
					continue
				}
				// colMol varies through mubar.
				dMubar := pt.p[k] * (s.mu[k] - pt.mubar) / pt.ptot
				grad[k] += coeff * molCol * (-dMubar / pt.mubar)
			}
		}

		// Dissolved inventory.
		sp := s.prob.Species.At(i)
		if !s.gas[i] || !sp.HasSolubilityModel() {
			continue
		}
		fi := math.Exp(x[i] + s.lnKT + pt.lnPhi[i])
		ppmw, dDp, dDf, err := solubilityDeriv(sp.Solubility(), t, pt.ptot, fi, wantJac)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: solubility of %q: %v", ErrInvalidModelOutput, sp.Name(), err)
		}
		molDis := ppmw * 1e-6 * melt / s.mu[i]
		total += coeff * molDis
		if wantJac {
			scale := coeff * 1e-6 * melt / s.mu[i]
			for k := 0; k < n; k++ {
				var d float64
				if s.gas[k] {
					d += dDp * pt.p[k]
					d += dDf * fi * pt.dLnPhi[i] * pt.p[k]
				}
				if k == i {
					d += dDf * fi
				}
				grad[k] += scale * d
			}
		}
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, nil, fmt.Errorf("%w: element %s inventory %g", ErrInvalidModelOutput, s.massElements[e], total)
	}
	return total, grad, nil
}

// modelLogDeriv evaluates ln of an activity model and, when requested, its
// derivative with respect to total pressure.
func modelLogDeriv(m eos.ActivityModel, t, ptot float64, deriv bool) (float64, float64, error) {
	phi, err := m.FugacityCoefficient(t, ptot)
	if err != nil {
		return 0, 0, err
	}
	if phi <= 0 || math.IsNaN(phi) || math.IsInf(phi, 0) {
		return 0, 0, fmt.Errorf("fugacity coefficient %g", phi)
	}
	lnPhi := math.Log(phi)
	if !deriv {
		return lnPhi, 0, nil
	}
	if _, ideal := m.(eos.Ideal); ideal {
		return lnPhi, 0, nil
	}
	h := 1e-6*ptot + 1e-9
	lo := ptot - h
	if lo < 0 {
		lo = 0
	}
	phiHi, err := m.FugacityCoefficient(t, ptot+h)
	if err != nil {
		return 0, 0, err
	}
	phiLo, err := m.FugacityCoefficient(t, lo)
	if err != nil {
		return 0, 0, err
	}
	if phiHi <= 0 || phiLo <= 0 {
		return 0, 0, fmt.Errorf("fugacity coefficient non-positive near P=%g bar", ptot)
	}
	d := (math.Log(phiHi) - math.Log(phiLo)) / (ptot + h - lo)
	return lnPhi, d, nil
}

// solubilityDeriv evaluates a solubility model and its partials with respect
// to total pressure and fugacity.
func solubilityDeriv(m solubility.Model, t, ptot, f float64, deriv bool) (ppmw, dDp, dDf float64, err error) {
	ppmw, err = m.DissolvedPPMW(t, ptot, f)
	if err != nil {
		return 0, 0, 0, err
	}
	if ppmw < 0 || math.IsNaN(ppmw) || math.IsInf(ppmw, 0) {
		return 0, 0, 0, fmt.Errorf("concentration %g ppmw", ppmw)
	}
	if !deriv {
		return ppmw, 0, 0, nil
	}
	if _, none := m.(solubility.None); none {
		return ppmw, 0, 0, nil
	}
	hp := 1e-6*ptot + 1e-9
	hi, err := m.DissolvedPPMW(t, ptot+hp, f)
	if err != nil {
		return 0, 0, 0, err
	}
	lo, err := m.DissolvedPPMW(t, math.Max(ptot-hp, 0), f)
	if err != nil {
		return 0, 0, 0, err
	}
	dDp = (hi - lo) / (ptot + hp - math.Max(ptot-hp, 0))

	hf := 1e-6*f + 1e-12
	hiF, err := m.DissolvedPPMW(t, ptot, f+hf)
	if err != nil {
		return 0, 0, 0, err
	}
	loF, err := m.DissolvedPPMW(t, ptot, math.Max(f-hf, 0))
	if err != nil {
		return 0, 0, 0, err
	}
	dDf = (hiF - loF) / (f + hf - math.Max(f-hf, 0))
	return ppmw, dDp, dDf, nil
}

// fugacityTargetDeriv evaluates a fugacity constraint target and the
// derivative of its log with respect to total pressure.
func fugacityTargetDeriv(con chem.FugacityConstraint, t, ptot float64, deriv bool) (float64, float64, error) {
	target, err := con.Fugacity(t, ptot)
	if err != nil {
		return 0, 0, err
	}
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0, 0, fmt.Errorf("target fugacity %g bar", target)
	}
	if !deriv {
		return target, 0, nil
	}
	if _, constant := con.(chem.ConstantFugacity); constant {
		return target, 0, nil
	}
	h := 1e-6*ptot + 1e-9
	hi, err := con.Fugacity(t, ptot+h)
	if err != nil {
		return 0, 0, err
	}
	lo, err := con.Fugacity(t, math.Max(ptot-h, 0))
	if err != nil {
		return 0, 0, err
	}
	if hi <= 0 || lo <= 0 {
		return 0, 0, fmt.Errorf("target fugacity non-positive near P=%g bar", ptot)
	}
	d := (math.Log(hi) - math.Log(lo)) / (ptot + h - math.Max(ptot-h, 0))
	return target, d, nil
}
