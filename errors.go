package atmodeller

import "github.com/felixlaga/atmodeller/internal/engine"

// Sentinel errors surfaced by Solve. They are the solver's own values, so
// errors.Is works across package boundaries.
var (
	// ErrConstraintCountMismatch: reactions plus constraints must equal the
	// number of species.
	ErrConstraintCountMismatch = engine.ErrConstraintCountMismatch

	// ErrUnknownConstraint: a constraint references a species or element
	// absent from the collection.
	ErrUnknownConstraint = engine.ErrUnknownConstraint

	// ErrInvalidConstraint: a constraint is structurally invalid, e.g. a
	// fugacity constraint on a condensed species.
	ErrInvalidConstraint = engine.ErrInvalidConstraint

	// ErrInvalidModelOutput: an activity, solubility or buffer model
	// produced a non-finite value during evaluation.
	ErrInvalidModelOutput = engine.ErrInvalidModelOutput
)
