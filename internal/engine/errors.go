package engine

import "errors"

// ErrConstraintCountMismatch is returned before solving when the number of
// equations (independent reactions plus constraints) does not equal the
// number of unknowns (one per species).
var ErrConstraintCountMismatch = errors.New("engine: constraint count does not match unknowns")

// ErrUnknownConstraint is returned when a constraint references a species or
// element that is not part of the collection.
var ErrUnknownConstraint = errors.New("engine: constraint references unknown identifier")

// ErrInvalidConstraint is returned when a constraint is structurally invalid,
// e.g. a fugacity constraint on a condensed species or a non-positive target.
var ErrInvalidConstraint = errors.New("engine: invalid constraint")

// ErrInvalidModelOutput is returned when an activity, solubility or buffer
// callback produces a non-finite or out-of-domain value.
var ErrInvalidModelOutput = errors.New("engine: model returned non-finite or out-of-domain value")
