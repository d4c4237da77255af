/*
Package chem holds the immutable value types a speciation problem is built
from: species and ordered species collections, planetary parameters, batched
scalar values, and the constraint types accepted by the solver.

Species are identified by their formula string (Hill notation plus a phase
suffix, e.g. "H2O_g" or "O2Si_l"). The elemental composition and molar mass
of a species are derived from its name at construction time, so a Species
value is self-describing and never mutated afterwards.
*/
package chem
