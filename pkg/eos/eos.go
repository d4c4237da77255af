package eos

import "errors"

// ErrOutOfRange is returned when a model is evaluated outside the
// temperature or pressure range it was calibrated for.
var ErrOutOfRange = errors.New("eos: conditions outside model calibration range")

// ActivityModel computes the fugacity coefficient of a species: the ratio of
// its effective fugacity to its ideal partial pressure.
//
// The pressure argument is the total gas pressure in bar; the Lewis-Randall
// rule is assumed, so a species' fugacity is phi(T, P) times its partial
// pressure.
type ActivityModel interface {
	// FugacityCoefficient returns phi at the given temperature (K) and total
	// pressure (bar).
	FugacityCoefficient(temperatureK, pressureBar float64) (float64, error)
}

// Ideal is the identity activity model: phi = 1 everywhere.
type Ideal struct{}

// FugacityCoefficient implements ActivityModel.
func (Ideal) FugacityCoefficient(temperatureK, pressureBar float64) (float64, error) {
	return 1.0, nil
}

// gas constant in L·atm/(mol·K), used by the virial-form models.
const rLAtm = 0.0820574

// bar to atm conversion.
const atmPerBar = 1.0 / 1.01325
