/*
Package reaction derives the minimal set of independent mass-action reactions
for a species collection.

The stoichiometric matrix is a basis of the null space of the elemental
composition matrix, computed with exact rational arithmetic and scaled to
smallest integer coefficients. The computation is fully deterministic for a
given species ordering: repeated calls yield identical matrices, which the
solver relies on for reproducibility.
*/
package reaction
