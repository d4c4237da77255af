package chem

// Atomic masses in kg/mol (CIAAW 2021 abridged values).
var atomicMass = map[string]float64{
	"H":  1.008e-3,
	"He": 4.0026e-3,
	"C":  12.011e-3,
	"N":  14.007e-3,
	"O":  15.999e-3,
	"F":  18.998e-3,
	"Ne": 20.180e-3,
	"Na": 22.990e-3,
	"Mg": 24.305e-3,
	"Al": 26.982e-3,
	"Si": 28.085e-3,
	"P":  30.974e-3,
	"S":  32.06e-3,
	"Cl": 35.45e-3,
	"Ar": 39.95e-3,
	"K":  39.098e-3,
	"Ca": 40.078e-3,
	"Ti": 47.867e-3,
	"Cr": 51.996e-3,
	"Mn": 54.938e-3,
	"Fe": 55.845e-3,
	"Ni": 58.693e-3,
}

// AtomicMass returns the molar mass of an element in kg/mol.
func AtomicMass(symbol string) (float64, bool) {
	m, ok := atomicMass[symbol]
	return m, ok
}
