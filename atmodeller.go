package atmodeller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"

	"github.com/felixlaga/atmodeller/internal/engine"
	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/observability"
	"github.com/felixlaga/atmodeller/pkg/output"
	"github.com/felixlaga/atmodeller/pkg/ports"
	"github.com/felixlaga/atmodeller/pkg/reaction"
)

// Parameters tune the nonlinear solve. The zero value selects defaults.
type Parameters = engine.Parameters

// InteriorAtmosphere is the high-level entry point for the library. It binds
// a species collection to its reaction network once; Solve can then be
// called repeatedly with different planets and constraints.
type InteriorAtmosphere struct {
	species *chem.Collection
	network *reaction.Network
	logger  *slog.Logger
	store   ports.SolutionStore
	metrics *observability.Metrics
}

// Option defines a functional option for configuring an InteriorAtmosphere.
type Option func(*InteriorAtmosphere)

// WithLogger sets a structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(ia *InteriorAtmosphere) {
		ia.logger = logger
	}
}

// WithSolutionStore enables the solution cache. Only fully converged outputs
// are cached; a cache hit skips the solve entirely.
func WithSolutionStore(store ports.SolutionStore) Option {
	return func(ia *InteriorAtmosphere) {
		ia.store = store
	}
}

// WithMetrics enables Prometheus instrumentation of solve calls.
func WithMetrics(m *observability.Metrics) Option {
	return func(ia *InteriorAtmosphere) {
		ia.metrics = m
	}
}

// New builds the reaction network for the collection and returns the bound
// model. It fails if the collection's composition matrix is rank deficient.
func New(species *chem.Collection, opts ...Option) (*InteriorAtmosphere, error) {
	ia := &InteriorAtmosphere{species: species}
	for _, opt := range opts {
		opt(ia)
	}
	if ia.logger == nil {
		ia.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	network, err := reaction.NewNetwork(species)
	if err != nil {
		return nil, err
	}
	ia.network = network
	return ia, nil
}

// Species returns the bound collection.
func (ia *InteriorAtmosphere) Species() *chem.Collection { return ia.species }

// Network returns the derived reaction network, for introspection.
func (ia *InteriorAtmosphere) Network() *reaction.Network { return ia.network }

// SolveRequest carries the per-call inputs. Constraints are keyed: mass
// constraints by element symbol, fugacity constraints by species name.
type SolveRequest struct {
	// Planet supplies temperature and planetary structure. The zero value
	// is a 2000 K molten Earth.
	Planet chem.Planet

	// FugacityConstraints pin the fugacity of gas species, keyed by name.
	FugacityConstraints map[string]chem.FugacityConstraint

	// MassConstraints fix total elemental inventories in kg, keyed by
	// element symbol.
	MassConstraints map[string]chem.Value

	// Parameters tune the solver. Zero fields select defaults.
	Parameters Parameters
}

// Solve runs the equilibrium computation. The returned Output is complete
// even when individual batch elements fail to converge; inspect
// Output.Metadata for per-instance status. Solve returns an error only for
// structural problems (bad constraints, shape mismatches) or context
// cancellation.
func (ia *InteriorAtmosphere) Solve(ctx context.Context, req *SolveRequest) (*output.Output, error) {
	prob := &engine.Problem{
		Species:             ia.species,
		Network:             ia.network,
		Planet:              req.Planet,
		FugacityConstraints: req.FugacityConstraints,
		MassConstraints:     req.MassConstraints,
		Params:              req.Parameters,
		Logger:              ia.logger,
	}

	var cacheKey string
	if ia.store != nil {
		fp, err := prob.Fingerprint()
		if err != nil {
			ia.countSolve("error")
			return nil, err
		}
		sum := sha256.Sum256([]byte(fp))
		cacheKey = hex.EncodeToString(sum[:])

		rec, err := ia.store.Load(ctx, cacheKey)
		switch {
		case err == nil:
			ia.logger.Debug("solution cache hit", "key", cacheKey)
			ia.countSolve("cached")
			return output.FromRecord(rec), nil
		case errors.Is(err, ports.ErrSolutionNotFound):
			// Miss, solve below.
		default:
			ia.logger.Warn("solution cache unavailable", "err", err)
		}
	}

	res, err := engine.Solve(ctx, prob)
	if err != nil {
		ia.countSolve("error")
		return nil, err
	}
	out := output.New(ia.species, res)

	if ia.metrics != nil {
		for _, m := range out.Metadata() {
			ia.metrics.ObserveInstance(m.Converged, m.Iterations, m.Attempts)
		}
	}
	if out.AllConverged() {
		ia.countSolve("converged")
	} else {
		ia.countSolve("failed")
	}

	if ia.store != nil && cacheKey != "" && out.AllConverged() {
		if err := ia.store.Save(ctx, cacheKey, out.Record()); err != nil {
			ia.logger.Warn("solution cache save failed", "err", err)
		}
	}
	return out, nil
}

func (ia *InteriorAtmosphere) countSolve(outcome string) {
	if ia.metrics != nil {
		ia.metrics.SolvesTotal.WithLabelValues(outcome).Inc()
	}
}
