package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/felixlaga/atmodeller/pkg/chem"
)

// InstanceResult is the outcome of one batch element. A non-converged
// instance is a recorded failure, never an error: failure of one batch
// element does not abort its siblings.
type InstanceResult struct {
	// X is the final state vector (log number densities).
	X []float64
	// Converged reports whether the residual tolerance was met.
	Converged bool
	// ResidualNorm is the final residual infinity norm.
	ResidualNorm float64
	// Iterations used by the successful candidate (or the last one).
	Iterations int
	// Attempts is the number of multistart candidates consumed.
	Attempts int
	// SaturatedIndices lists state entries pinned at a hypercube bound at
	// convergence. Saturation is not a failure, but it flags a result the
	// model cannot fully resolve.
	SaturatedIndices []int

	// Decoded physical quantities, valid when Converged.
	PartialPressure []float64 // bar per species; condensates report 0
	Fugacity        []float64 // bar per gas species (phi * p)
	Activity        []float64 // dimensionless activity per species
	CondensedMass   []float64 // kg per condensed species
	DissolvedMass   []float64 // kg per gas species with a solubility model
	TotalPressure   float64   // bar
	MeanMolarMass   float64   // kg/mol over the gas phase
	Temperature     float64   // K
}

// Result is a batch of instance results.
type Result struct {
	Instances []InstanceResult
}

// AllConverged reports whether every batch element converged.
func (r *Result) AllConverged() bool {
	for i := range r.Instances {
		if !r.Instances[i].Converged {
			return false
		}
	}
	return true
}

// Solve validates the problem and runs the batch. Each instance runs an
// independent multistart search; the context is consulted only between
// instances and attempts, a single Newton run is uninterruptible.
func Solve(ctx context.Context, p *Problem) (*Result, error) {
	a, err := p.assemble()
	if err != nil {
		return nil, err
	}
	params := p.Params.WithDefaults()

	res := &Result{Instances: make([]InstanceResult, a.batch)}
	for inst := 0; inst < a.batch; inst++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sys, err := newSystem(p, a, inst)
		if err != nil {
			return nil, err
		}
		res.Instances[inst] = solveInstance(ctx, sys, params, inst)
		if p.Logger != nil {
			ir := &res.Instances[inst]
			p.Logger.Debug("instance solved",
				"instance", inst,
				"converged", ir.Converged,
				"residual", ir.ResidualNorm,
				"iterations", ir.Iterations,
				"attempts", ir.Attempts,
				"saturated", len(ir.SaturatedIndices) > 0)
		}
	}
	return res, nil
}

func solveInstance(ctx context.Context, sys *system, params Parameters, instance int) InstanceResult {
	n := sys.dim()
	out := InstanceResult{
		X:            make([]float64, n),
		ResidualNorm: math.Inf(1),
	}

	for attempt := 0; attempt < params.Multistart; attempt++ {
		if ctx.Err() != nil {
			break
		}
		out.Attempts = attempt + 1
		x0 := startingPoint(sys, params, instance, attempt)
		x, iters, norm, ok := newton(sys, x0, params)
		if norm < out.ResidualNorm {
			copy(out.X, x)
			out.ResidualNorm = norm
			out.Iterations = iters
		}
		if ok {
			copy(out.X, x)
			out.ResidualNorm = norm
			out.Iterations = iters
			out.Converged = true
			break
		}
	}

	if out.Converged {
		out.SaturatedIndices = saturated(out.X, params)
		sys.decode(&out)
	}
	return out
}

// startingPoint is a pure function of (seed, instance, attempt). Attempt
// zero is the heuristic guess: every species at the number density of a one
// bar atmosphere. Later attempts draw uniformly from the hypercube.
func startingPoint(sys *system, params Parameters, instance, attempt int) []float64 {
	n := sys.dim()
	x := make([]float64, n)
	if attempt == 0 {
		guess := math.Log(chem.PascalsPerBar / (chem.BoltzmannConstant * sys.inst.SurfaceTemperature))
		for i := range x {
			x[i] = clamp(guess, params.BoundLow, params.BoundHigh)
		}
		return x
	}
	rng := rand.New(rand.NewSource(params.Seed + int64(instance)*100003 + int64(attempt)*1009))
	for i := range x {
		x[i] = params.BoundLow + rng.Float64()*(params.BoundHigh-params.BoundLow)
	}
	return x
}

// newton runs a damped Newton iteration with backtracking, clipping the
// state into the hypercube after every step.
func newton(sys *system, x0 []float64, params Parameters) (x []float64, iters int, norm float64, ok bool) {
	n := sys.dim()
	x = append([]float64(nil), x0...)
	r := make([]float64, n)
	rTry := make([]float64, n)
	xTry := make([]float64, n)
	jac := mat.NewDense(n, n, nil)

	if err := sys.eval(x, r, nil); err != nil {
		return x, 0, math.Inf(1), false
	}
	norm = infNorm(r)

	for iters = 0; iters < params.MaxIter; iters++ {
		if norm <= params.Tol {
			return x, iters, norm, true
		}
		if err := sys.eval(x, r, jac); err != nil {
			return x, iters, norm, false
		}

		var step mat.VecDense
		neg := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			neg.SetVec(i, -r[i])
		}
		if err := step.SolveVec(jac, neg); err != nil {
			// Singular Jacobian at this point; give up on the candidate and
			// let the next multistart draw move elsewhere.
			return x, iters, norm, false
		}

		accepted := false
		lambda := 1.0
		for bt := 0; bt < 24; bt++ {
			for i := 0; i < n; i++ {
				xTry[i] = clamp(x[i]+lambda*step.AtVec(i), params.BoundLow, params.BoundHigh)
			}
			if err := sys.eval(xTry, rTry, nil); err == nil {
				tryNorm := infNorm(rTry)
				if tryNorm < norm*(1.0-1e-4*lambda) || tryNorm <= params.Tol {
					copy(x, xTry)
					norm = tryNorm
					accepted = true
					break
				}
			}
			lambda /= 2
		}
		if !accepted {
			return x, iters, norm, false
		}
	}
	return x, iters, norm, norm <= params.Tol
}

// decode maps a converged state vector to physical quantities.
func (s *system) decode(out *InstanceResult) {
	n := s.dim()
	t := s.inst.SurfaceTemperature

	out.Temperature = t
	out.PartialPressure = make([]float64, n)
	out.Fugacity = make([]float64, n)
	out.Activity = make([]float64, n)
	out.CondensedMass = make([]float64, n)
	out.DissolvedMass = make([]float64, n)

	p := make([]float64, n)
	var ptot, muSum float64
	for i := 0; i < n; i++ {
		p[i] = math.Exp(out.X[i] + s.lnKT)
		if s.gas[i] {
			ptot += p[i]
			muSum += p[i] * s.mu[i]
		}
	}
	mubar := muSum / ptot
	colMol := s.inst.SurfaceArea * chem.PascalsPerBar / (s.inst.SurfaceGravity * mubar)
	out.TotalPressure = ptot
	out.MeanMolarMass = mubar

	for i := 0; i < n; i++ {
		sp := s.prob.Species.At(i)
		// A converged state has already passed model validation; evaluation
		// errors cannot reappear at the same point.
		phi, _ := sp.Activity().FugacityCoefficient(t, ptot)
		if s.gas[i] {
			out.PartialPressure[i] = p[i]
			out.Fugacity[i] = phi * p[i]
			out.Activity[i] = phi * p[i]
			if sp.HasSolubilityModel() {
				ppmw, _ := sp.Solubility().DissolvedPPMW(t, ptot, out.Fugacity[i])
				out.DissolvedMass[i] = ppmw * 1e-6 * s.inst.MantleMeltMass
			}
		} else {
			out.Activity[i] = phi
			out.CondensedMass[i] = p[i] * colMol * s.mu[i]
		}
	}
}

func saturated(x []float64, params Parameters) []int {
	const eps = 1e-9
	var idx []int
	for i, v := range x {
		if math.Abs(v-params.BoundHigh) < eps || math.Abs(v-params.BoundLow) < eps {
			idx = append(idx, i)
		}
	}
	return idx
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func infNorm(r []float64) float64 {
	var m float64
	for _, v := range r {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Fingerprint produces a stable identifier for a problem instance, used by
// the solution cache. It folds the species ordering, constraint targets and
// solver parameters; two equal fingerprints yield bit-identical results
// because the solver is deterministic.
func (p *Problem) Fingerprint() (string, error) {
	a, err := p.assemble()
	if err != nil {
		return "", err
	}
	params := p.Params.WithDefaults()
	fugs := make([]string, len(a.fugSpecies))
	for k, idx := range a.fugSpecies {
		fugs[k] = fmt.Sprintf("%s=%#v", p.Species.At(idx).Name(), a.fugCons[k])
	}
	s := fmt.Sprintf("species=%v planetT=%v planetM=%v planetR=%v melt=%v mass=%v/%v fug=%v params=%+v",
		p.Species.Names(),
		p.Planet.SurfaceTemperature, p.Planet.PlanetMass, p.Planet.SurfaceRadius, p.Planet.MantleMeltMass,
		a.massElements, a.massTargets, fugs, params)
	return s, nil
}
