/*
Package output decodes converged solver states into physical quantities:
partial pressures, activities, condensed and dissolved masses, and the
flattened "quick look" mapping keyed by species name.

All accessors are batch-aware: values are chem.Value slices aligned with the
batch dimension of the solve. An Output is read-only and owned by the caller
after Solve returns.
*/
package output
