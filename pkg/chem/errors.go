package chem

import "errors"

// ErrDuplicateSpecies is returned when a collection is constructed with two
// species sharing the same name.
var ErrDuplicateSpecies = errors.New("chem: duplicate species name")

// ErrEmptyCollection is returned when a collection is constructed with no species.
var ErrEmptyCollection = errors.New("chem: collection has no species")

// ErrUnknownElement is returned when a formula references an element symbol
// that is not in the atomic mass table.
var ErrUnknownElement = errors.New("chem: unknown element symbol")

// ErrInvalidFormula is returned when a species name cannot be parsed as a
// formula with a phase suffix.
var ErrInvalidFormula = errors.New("chem: invalid species formula")

// ErrShapeMismatch is returned when batched values disagree on batch length.
var ErrShapeMismatch = errors.New("chem: batched value shape mismatch")
