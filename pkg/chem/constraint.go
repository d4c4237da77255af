package chem

// FugacityConstraint fixes the fugacity of one gas species. Implementations
// may depend on temperature and total pressure (mineral buffers do), so the
// target is re-evaluated at every residual evaluation.
type FugacityConstraint interface {
	// Fugacity returns the target fugacity in bar at the given temperature
	// (K) and total pressure (bar).
	Fugacity(temperatureK, pressureBar float64) (float64, error)
}

// ConstantFugacity fixes a species fugacity to a constant value in bar.
type ConstantFugacity struct {
	Value float64
}

// Fugacity implements FugacityConstraint.
func (c ConstantFugacity) Fugacity(temperatureK, pressureBar float64) (float64, error) {
	return c.Value, nil
}
