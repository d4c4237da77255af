package chem

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase tags the physical state of a species.
type Phase int

const (
	// PhaseGas marks a gas-phase species contributing to atmospheric pressure.
	PhaseGas Phase = iota
	// PhaseCondensed marks a liquid or crystalline species.
	PhaseCondensed
)

func (p Phase) String() string {
	if p == PhaseGas {
		return "gas"
	}
	return "condensed"
}

// phase suffixes accepted on species names.
var phaseSuffixes = map[string]Phase{
	"g":  PhaseGas,
	"l":  PhaseCondensed,
	"cr": PhaseCondensed,
}

// ParseFormula splits a species name such as "H2O_g" into its elemental
// composition and phase, and computes the molar mass in kg/mol.
func ParseFormula(name string) (map[string]int, Phase, float64, error) {
	idx := strings.LastIndex(name, "_")
	if idx <= 0 || idx == len(name)-1 {
		return nil, 0, 0, fmt.Errorf("%w: %q (missing phase suffix)", ErrInvalidFormula, name)
	}
	phase, ok := phaseSuffixes[name[idx+1:]]
	if !ok {
		return nil, 0, 0, fmt.Errorf("%w: %q (phase suffix %q)", ErrInvalidFormula, name, name[idx+1:])
	}

	formula := name[:idx]
	comp := make(map[string]int)
	i := 0
	for i < len(formula) {
		c := formula[i]
		if c < 'A' || c > 'Z' {
			return nil, 0, 0, fmt.Errorf("%w: %q at position %d", ErrInvalidFormula, name, i)
		}
		j := i + 1
		if j < len(formula) && formula[j] >= 'a' && formula[j] <= 'z' {
			j++
		}
		symbol := formula[i:j]
		if _, ok := atomicMass[symbol]; !ok {
			return nil, 0, 0, fmt.Errorf("%w: %q in %q", ErrUnknownElement, symbol, name)
		}
		count := 1
		k := j
		for k < len(formula) && formula[k] >= '0' && formula[k] <= '9' {
			k++
		}
		if k > j {
			n, err := strconv.Atoi(formula[j:k])
			if err != nil || n == 0 {
				return nil, 0, 0, fmt.Errorf("%w: %q (count %q)", ErrInvalidFormula, name, formula[j:k])
			}
			count = n
		}
		comp[symbol] += count
		i = k
	}
	if len(comp) == 0 {
		return nil, 0, 0, fmt.Errorf("%w: %q (empty formula)", ErrInvalidFormula, name)
	}

	var mass float64
	for symbol, n := range comp {
		mass += float64(n) * atomicMass[symbol]
	}
	return comp, phase, mass, nil
}
