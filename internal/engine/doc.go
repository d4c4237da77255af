/*
Package engine implements the equilibrium solver core: problem assembly,
the residual system over log number densities, and the multistart damped
Newton iteration.

The engine is deliberately free of presentation concerns; callers hand it a
validated Problem and receive per-instance results with raw state vectors and
decoded physical quantities. The public facade in the repository root wraps
it with logging, metrics and caching.
*/
package engine
