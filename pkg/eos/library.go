package eos

// Critical points used by the corresponding-states models, in K and kbar.
// H2 uses the quantum-corrected effective critical point.
var criticalPoints = map[string]struct{ tc, pc float64 }{
	"H2":  {41.2, 0.0211},
	"CO":  {132.9, 0.0350},
	"CH4": {190.6, 0.0460},
	"S2":  {208.2, 0.0720},
	"N2":  {126.2, 0.0339},
}

// Models returns the named activity model registry. The map is rebuilt on
// each call so callers may not mutate shared state.
func Models() map[string]ActivityModel {
	m := map[string]ActivityModel{
		"ideal":               Ideal{},
		"H2_beattie_holley58": newH2BeattieHolley58(),
		"H2_chabrier21":       newH2Chabrier21(),
		"H2O_cork_holland98":  newH2OCorkHolland98(),
		"CO2_cork_holland98":  newCO2CorkHolland98(),
	}
	for species, cp := range criticalPoints {
		m[species+"_cork_cs_holland91"] = CorrespondingStates{Tc: cp.tc, Pc: cp.pc}
	}
	return m
}
