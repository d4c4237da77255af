package chem

import (
	"fmt"
	"sort"

	"github.com/felixlaga/atmodeller/pkg/eos"
	"github.com/felixlaga/atmodeller/pkg/solubility"
)

// Species is an immutable description of one chemical species. Identity is
// by name; the elemental composition and molar mass are derived from the
// name at construction.
type Species struct {
	name        string
	phase       Phase
	composition map[string]int
	molarMass   float64
	activity    eos.ActivityModel
	solubility  solubility.Model
}

// SpeciesOption configures optional non-ideal behavior on a species.
type SpeciesOption func(*Species)

// WithActivity attaches a real-gas activity model. Absence implies ideal
// behavior (activity coefficient 1).
func WithActivity(m eos.ActivityModel) SpeciesOption {
	return func(s *Species) { s.activity = m }
}

// WithSolubility attaches a melt solubility model. Absence implies an
// insoluble species.
func WithSolubility(m solubility.Model) SpeciesOption {
	return func(s *Species) { s.solubility = m }
}

// CreateGas constructs a gas-phase species from its formula name.
func CreateGas(name string, opts ...SpeciesOption) (Species, error) {
	return create(name, PhaseGas, opts...)
}

// CreateCondensed constructs a condensed-phase species from its formula name.
func CreateCondensed(name string, opts ...SpeciesOption) (Species, error) {
	return create(name, PhaseCondensed, opts...)
}

func create(name string, want Phase, opts ...SpeciesOption) (Species, error) {
	comp, phase, mass, err := ParseFormula(name)
	if err != nil {
		return Species{}, err
	}
	if phase != want {
		return Species{}, fmt.Errorf("%w: %q has a %s suffix", ErrInvalidFormula, name, phase)
	}
	s := Species{
		name:        name,
		phase:       phase,
		composition: comp,
		molarMass:   mass,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// Name returns the species identifier (formula plus phase suffix).
func (s Species) Name() string { return s.name }

// Phase returns the phase tag.
func (s Species) Phase() Phase { return s.phase }

// MolarMass returns the molar mass in kg/mol.
func (s Species) MolarMass() float64 { return s.molarMass }

// ElementCount returns the number of atoms of the element in one formula unit.
func (s Species) ElementCount(symbol string) int { return s.composition[symbol] }

// Elements returns the element symbols in the species, sorted.
func (s Species) Elements() []string {
	out := make([]string, 0, len(s.composition))
	for symbol := range s.composition {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Activity returns the attached activity model, or eos.Ideal if none.
func (s Species) Activity() eos.ActivityModel {
	if s.activity == nil {
		return eos.Ideal{}
	}
	return s.activity
}

// HasActivityModel reports whether a non-ideal activity model is attached.
func (s Species) HasActivityModel() bool { return s.activity != nil }

// Solubility returns the attached solubility model, or solubility.None.
func (s Species) Solubility() solubility.Model {
	if s.solubility == nil {
		return solubility.None{}
	}
	return s.solubility
}

// HasSolubilityModel reports whether a solubility model is attached.
func (s Species) HasSolubilityModel() bool { return s.solubility != nil }

// Collection is an ordered, duplicate-free sequence of species. The order
// fixes the state-vector indexing of a solve and the element ordering of the
// composition matrix, so repeated solves over one collection are strictly
// reproducible.
type Collection struct {
	species  []Species
	index    map[string]int
	elements []string
}

// NewCollection builds a collection, rejecting name collisions.
func NewCollection(species ...Species) (*Collection, error) {
	if len(species) == 0 {
		return nil, ErrEmptyCollection
	}
	c := &Collection{
		species: make([]Species, len(species)),
		index:   make(map[string]int, len(species)),
	}
	copy(c.species, species)
	seen := make(map[string]bool)
	for i, s := range species {
		if _, dup := c.index[s.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSpecies, s.name)
		}
		c.index[s.name] = i
		for _, symbol := range s.Elements() {
			if !seen[symbol] {
				seen[symbol] = true
				c.elements = append(c.elements, symbol)
			}
		}
	}
	return c, nil
}

// Len returns the number of species.
func (c *Collection) Len() int { return len(c.species) }

// At returns the species at index i.
func (c *Collection) At(i int) Species { return c.species[i] }

// Index returns the state-vector index of a species name.
func (c *Collection) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Elements returns the element symbols in first-appearance order over the
// species sequence. This ordering is part of the collection's identity.
func (c *Collection) Elements() []string {
	out := make([]string, len(c.elements))
	copy(out, c.elements)
	return out
}

// HasElement reports whether any species contains the element.
func (c *Collection) HasElement(symbol string) bool {
	for _, e := range c.elements {
		if e == symbol {
			return true
		}
	}
	return false
}

// Names returns the species names in collection order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.species))
	for i, s := range c.species {
		out[i] = s.name
	}
	return out
}
