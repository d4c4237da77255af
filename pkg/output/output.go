package output

import (
	"math"

	"github.com/felixlaga/atmodeller/internal/engine"
	"github.com/felixlaga/atmodeller/pkg/chem"
)

// Metadata is the per-instance convergence record.
type Metadata struct {
	// Converged reports whether the residual tolerance was met.
	Converged bool `json:"converged"`
	// ResidualNorm is the final residual infinity norm.
	ResidualNorm float64 `json:"residual_norm"`
	// Iterations used by the winning candidate.
	Iterations int `json:"iterations"`
	// Attempts is the number of multistart candidates consumed.
	Attempts int `json:"attempts"`
	// BoundarySaturated flags a solution pinned against a hypercube bound:
	// still a success when tolerance is met, but distinguishable from a
	// solution deep inside the domain.
	BoundarySaturated bool `json:"boundary_saturated"`
	// SaturatedSpecies names the species at a bound.
	SaturatedSpecies []string `json:"saturated_species,omitempty"`
}

// Output holds the decoded solution of one solve call.
type Output struct {
	keys     []string
	values   map[string]chem.Value
	pressure map[string]chem.Value
	activity map[string]chem.Value
	condMass map[string]chem.Value
	dissMass map[string]chem.Value
	meta     []Metadata
}

// New assembles an Output from the solver result. Non-converged batch
// elements carry NaN values; their failure is visible in Metadata.
func New(species *chem.Collection, res *engine.Result) *Output {
	n := species.Len()
	batch := len(res.Instances)

	o := &Output{
		values:   make(map[string]chem.Value),
		pressure: make(map[string]chem.Value),
		activity: make(map[string]chem.Value),
		condMass: make(map[string]chem.Value),
		dissMass: make(map[string]chem.Value),
		meta:     make([]Metadata, batch),
	}

	for b, inst := range res.Instances {
		m := Metadata{
			Converged:         inst.Converged,
			ResidualNorm:      inst.ResidualNorm,
			Iterations:        inst.Iterations,
			Attempts:          inst.Attempts,
			BoundarySaturated: len(inst.SaturatedIndices) > 0,
		}
		for _, i := range inst.SaturatedIndices {
			m.SaturatedSpecies = append(m.SaturatedSpecies, species.At(i).Name())
		}
		o.meta[b] = m
	}

	at := func(inst *engine.InstanceResult, vals []float64, i int) float64 {
		if !inst.Converged {
			return math.NaN()
		}
		return vals[i]
	}

	for i := 0; i < n; i++ {
		sp := species.At(i)
		name := sp.Name()

		pressure := make(chem.Value, batch)
		activity := make(chem.Value, batch)
		cond := make(chem.Value, batch)
		diss := make(chem.Value, batch)
		for b := range res.Instances {
			inst := &res.Instances[b]
			pressure[b] = at(inst, inst.PartialPressure, i)
			activity[b] = at(inst, inst.Activity, i)
			cond[b] = at(inst, inst.CondensedMass, i)
			diss[b] = at(inst, inst.DissolvedMass, i)
		}
		o.pressure[name] = pressure
		o.activity[name] = activity
		o.condMass[name] = cond
		o.dissMass[name] = diss

		// Quick look: pressure for gases, condensed mass for condensates,
		// plus an activity entry for species with a non-ideal model.
		if sp.Phase() == chem.PhaseGas {
			o.addKey(name, pressure)
		} else {
			o.addKey(name, cond)
		}
		if sp.HasActivityModel() {
			o.addKey(name+"_activity", activity)
		}
	}
	return o
}

func (o *Output) addKey(key string, v chem.Value) {
	o.keys = append(o.keys, key)
	o.values[key] = v
}

// BatchLen returns the batch dimension of the solve.
func (o *Output) BatchLen() int { return len(o.meta) }

// Metadata returns the per-instance convergence records.
func (o *Output) Metadata() []Metadata {
	out := make([]Metadata, len(o.meta))
	copy(out, o.meta)
	return out
}

// AllConverged reports whether every batch element converged.
func (o *Output) AllConverged() bool {
	for _, m := range o.meta {
		if !m.Converged {
			return false
		}
	}
	return true
}

// QuickLook returns the flattened solution mapping: species name to partial
// pressure (gas, bar) or condensed mass (kg), plus "<name>_activity" entries
// for non-ideal species. Values are batch-aligned.
func (o *Output) QuickLook() map[string]chem.Value {
	out := make(map[string]chem.Value, len(o.values))
	for k, v := range o.values {
		out[k] = append(chem.Value(nil), v...)
	}
	return out
}

// QuickLookKeys returns the quick-look keys preserving species order.
func (o *Output) QuickLookKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// PartialPressure returns the partial pressure of a gas species in bar.
func (o *Output) PartialPressure(name string) (chem.Value, bool) {
	v, ok := o.pressure[name]
	return v, ok
}

// Activity returns the activity of a species (fugacity in bar for gases).
func (o *Output) Activity(name string) (chem.Value, bool) {
	v, ok := o.activity[name]
	return v, ok
}

// CondensedMass returns the condensed-phase mass of a species in kg.
func (o *Output) CondensedMass(name string) (chem.Value, bool) {
	v, ok := o.condMass[name]
	return v, ok
}

// DissolvedMass returns the melt-dissolved mass of a species in kg.
func (o *Output) DissolvedMass(name string) (chem.Value, bool) {
	v, ok := o.dissMass[name]
	return v, ok
}
