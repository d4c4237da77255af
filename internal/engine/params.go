package engine

// Parameters tune the nonlinear solve. The zero value of any field selects
// its default.
type Parameters struct {
	// Multistart is the number of candidate starting points per instance.
	Multistart int
	// Tol is the residual infinity-norm convergence tolerance.
	Tol float64
	// MaxIter bounds Newton iterations per candidate.
	MaxIter int
	// BoundLow and BoundHigh delimit the log-number-density hypercube. The
	// upper default of 70 is documented behavior: solutions can saturate
	// against it and still count as converged.
	BoundLow, BoundHigh float64
	// Seed drives the multistart perturbations. A fixed seed makes results
	// bit-for-bit reproducible.
	Seed int64
}

// Solver defaults.
const (
	DefaultMultistart = 1
	DefaultTol        = 1.0e-8
	DefaultMaxIter    = 128
	DefaultBoundLow   = -40.0
	DefaultBoundHigh  = 70.0
)

// WithDefaults fills unset fields.
func (p Parameters) WithDefaults() Parameters {
	if p.Multistart <= 0 {
		p.Multistart = DefaultMultistart
	}
	if p.Tol <= 0 {
		p.Tol = DefaultTol
	}
	if p.MaxIter <= 0 {
		p.MaxIter = DefaultMaxIter
	}
	if p.BoundLow == 0 && p.BoundHigh == 0 {
		p.BoundLow = DefaultBoundLow
		p.BoundHigh = DefaultBoundHigh
	}
	return p
}
