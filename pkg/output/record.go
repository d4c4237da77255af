package output

import "github.com/felixlaga/atmodeller/pkg/chem"

// Record is the serializable form of an Output, used by solution stores.
// Because the solver is deterministic for a fixed seed, a cached Record is
// interchangeable with a fresh solve of the same fingerprint.
type Record struct {
	Keys     []string              `json:"keys"`
	Values   map[string][]float64  `json:"values"`
	Pressure map[string][]float64  `json:"pressure"`
	Activity map[string][]float64  `json:"activity"`
	CondMass map[string][]float64  `json:"condensed_mass"`
	DissMass map[string][]float64  `json:"dissolved_mass"`
	Metadata []Metadata            `json:"metadata"`
}

// Record converts the Output for persistence.
func (o *Output) Record() *Record {
	toMap := func(src map[string]chem.Value) map[string][]float64 {
		out := make(map[string][]float64, len(src))
		for k, v := range src {
			out[k] = append([]float64(nil), v...)
		}
		return out
	}
	return &Record{
		Keys:     append([]string(nil), o.keys...),
		Values:   toMap(o.values),
		Pressure: toMap(o.pressure),
		Activity: toMap(o.activity),
		CondMass: toMap(o.condMass),
		DissMass: toMap(o.dissMass),
		Metadata: append([]Metadata(nil), o.meta...),
	}
}

// FromRecord reconstructs an Output from a persisted Record.
func FromRecord(r *Record) *Output {
	fromMap := func(src map[string][]float64) map[string]chem.Value {
		out := make(map[string]chem.Value, len(src))
		for k, v := range src {
			out[k] = append(chem.Value(nil), v...)
		}
		return out
	}
	return &Output{
		keys:     append([]string(nil), r.Keys...),
		values:   fromMap(r.Values),
		pressure: fromMap(r.Pressure),
		activity: fromMap(r.Activity),
		condMass: fromMap(r.CondMass),
		dissMass: fromMap(r.DissMass),
		meta:     append([]Metadata(nil), r.Metadata...),
	}
}
