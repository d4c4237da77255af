package chem

import "fmt"

// Value is a batched scalar: length 1 broadcasts across a batch, length B
// supplies one entry per batch element. Values are treated as immutable
// snapshots for the duration of a solve.
type Value []float64

// Scalar wraps a single float as a broadcastable Value.
func Scalar(v float64) Value { return Value{v} }

// At returns the value for batch element i under broadcast semantics.
func (v Value) At(i int) float64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[i]
}

// BatchLen reconciles the batch length implied by a set of values. Each value
// must have length 1 or the shared batch length.
func BatchLen(values ...Value) (int, error) {
	batch := 1
	for _, v := range values {
		if len(v) == 0 {
			return 0, fmt.Errorf("%w: empty value", ErrShapeMismatch)
		}
		if len(v) == 1 {
			continue
		}
		if batch == 1 {
			batch = len(v)
		} else if len(v) != batch {
			return 0, fmt.Errorf("%w: lengths %d and %d", ErrShapeMismatch, batch, len(v))
		}
	}
	return batch, nil
}
