package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/reaction"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

// Problem is a fully specified batch of equilibrium solves. All inputs are
// treated as immutable snapshots for the duration of Solve.
type Problem struct {
	Species             *chem.Collection
	Network             *reaction.Network
	Planet              chem.Planet
	FugacityConstraints map[string]chem.FugacityConstraint
	MassConstraints     map[string]chem.Value
	Params              Parameters
	Logger              *slog.Logger
}

// assembled is the validated, order-resolved form of a Problem. Constraint
// identifiers are resolved by keyed lookup and ordered by the collection
// alone, never by map iteration or caller ordering.
type assembled struct {
	batch        int
	massElements []string // collection element order, constrained subset
	massTargets  []chem.Value
	fugSpecies   []int // species indices, collection order
	fugCons      []chem.FugacityConstraint
}

func (p *Problem) assemble() (*assembled, error) {
	n := p.Species.Len()

	hasGas := false
	for i := 0; i < n; i++ {
		if p.Species.At(i).Phase() == chem.PhaseGas {
			hasGas = true
			break
		}
	}
	if !hasGas {
		return nil, fmt.Errorf("%w: collection has no gas species", ErrInvalidConstraint)
	}

	if p.Network.NumReactions() > 0 {
		for i := 0; i < n; i++ {
			name := p.Species.At(i).Name()
			if !thermo.HasFormationData(name) {
				return nil, fmt.Errorf("engine: %w (%q)", thermo.ErrNoData, name)
			}
		}
	}

	a := &assembled{}

	// Mass constraints keyed by element symbol, ordered by the collection's
	// element ordering.
	for _, symbol := range sortedKeys(p.MassConstraints) {
		if !p.Species.HasElement(symbol) {
			return nil, fmt.Errorf("%w: element %q", ErrUnknownConstraint, symbol)
		}
	}
	for _, symbol := range p.Network.Elements() {
		target, ok := p.MassConstraints[symbol]
		if !ok {
			continue
		}
		a.massElements = append(a.massElements, symbol)
		a.massTargets = append(a.massTargets, target)
	}

	// Fugacity constraints keyed by species name, ordered by the collection.
	for _, name := range sortedKeys(p.FugacityConstraints) {
		idx, ok := p.Species.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: species %q", ErrUnknownConstraint, name)
		}
		if p.Species.At(idx).Phase() != chem.PhaseGas {
			return nil, fmt.Errorf("%w: fugacity constraint on condensed species %q", ErrInvalidConstraint, name)
		}
	}
	for i := 0; i < n; i++ {
		name := p.Species.At(i).Name()
		con, ok := p.FugacityConstraints[name]
		if !ok {
			continue
		}
		a.fugSpecies = append(a.fugSpecies, i)
		a.fugCons = append(a.fugCons, con)
	}

	equations := p.Network.NumReactions() + len(a.massElements) + len(a.fugSpecies)
	if equations != n {
		return nil, fmt.Errorf("%w: %d reactions + %d constraints != %d species",
			ErrConstraintCountMismatch, p.Network.NumReactions(),
			len(a.massElements)+len(a.fugSpecies), n)
	}

	values := make([]chem.Value, 0, len(a.massTargets))
	values = append(values, a.massTargets...)
	planetBatch, err := p.Planet.BatchLen()
	if err != nil {
		return nil, err
	}
	values = append(values, chem.Value(make([]float64, planetBatch)))
	batch, err := chem.BatchLen(values...)
	if err != nil {
		return nil, err
	}
	a.batch = batch
	return a, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
