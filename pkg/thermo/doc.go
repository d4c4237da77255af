/*
Package thermo carries the thermodynamic data the equilibrium solver needs:
standard Gibbs free energies of formation for the built-in species library,
and oxygen-fugacity mineral buffers usable as fugacity constraints.

The formation energies are JANAF-derived values on a coarse temperature grid
with linear interpolation; reference-state species (H2_g, O2_g, N2_g, ...)
are zero by definition. The tables are intentionally compact: this package is
a data shim, not a thermochemistry database.
*/
package thermo
