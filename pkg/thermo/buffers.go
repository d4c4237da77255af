package thermo

import (
	"fmt"
	"math"
)

// IronWustiteBuffer is the Fe-FeO oxygen fugacity buffer,
//
//	log10 fO2 = A + B/T + Shift
//
// fit over 800-1800 K to the iron-wustite equilibrium. Shift offsets the
// buffer in log10 units (e.g. Shift=-2 is "IW-2"). The buffer satisfies the
// chem.FugacityConstraint interface.
type IronWustiteBuffer struct {
	// Shift displaces the buffer in log10 fugacity units.
	Shift float64
}

const (
	iwA = 6.39836535
	iwB = -27214.962811900884
)

// Fugacity returns the buffered oxygen fugacity in bar.
func (b IronWustiteBuffer) Fugacity(temperatureK, pressureBar float64) (float64, error) {
	if temperatureK <= 0 {
		return 0, fmt.Errorf("thermo: non-positive temperature %g K", temperatureK)
	}
	log10f := iwA + iwB/temperatureK + b.Shift
	return math.Pow(10, log10f), nil
}
