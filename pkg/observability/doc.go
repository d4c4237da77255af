/*
Package observability exposes Prometheus instrumentation for the solver:
solve counts, convergence failures and iteration histograms. Metrics are
registered on a caller-supplied registry so tests and embedders stay
isolated from the global default.
*/
package observability
