package chem

import "math"

// Physical constants (CODATA 2018).
const (
	// BoltzmannConstant in J/K.
	BoltzmannConstant = 1.380649e-23
	// AvogadroConstant in 1/mol.
	AvogadroConstant = 6.02214076e23
	// GasConstant in J/(mol K).
	GasConstant = 8.31446261815324
	// GravitationalConstant in m^3/(kg s^2).
	GravitationalConstant = 6.6743e-11
	// PascalsPerBar converts bar to Pa.
	PascalsPerBar = 1.0e5
)

// Earth reference values.
const (
	// EarthMass in kg.
	EarthMass = 5.97224e24
	// EarthRadius in m.
	EarthRadius = 6371000.0
	// EarthMantleMeltMass is the fully molten silicate mantle mass in kg,
	// the default dissolved-volatile reservoir.
	EarthMantleMeltMass = 4.208e24
	// EarthOceanMass is the mass of one Earth ocean of water in kg.
	EarthOceanMass = 1.4e21
)

// EarthOceansToHydrogenMass converts a number of Earth oceans to the
// equivalent hydrogen mass in kg.
func EarthOceansToHydrogenMass(oceans float64) float64 {
	h2o := 2*atomicMass["H"] + atomicMass["O"]
	return oceans * EarthOceanMass * (2 * atomicMass["H"] / h2o)
}

// Planet carries the planetary parameters a solve depends on. Fields are
// batched Values; scalars broadcast. A Planet is an immutable snapshot for
// the duration of a solve call.
type Planet struct {
	// SurfaceTemperature in K.
	SurfaceTemperature Value
	// PlanetMass in kg.
	PlanetMass Value
	// SurfaceRadius in m.
	SurfaceRadius Value
	// MantleMeltMass is the molten reservoir mass in kg available for
	// volatile dissolution.
	MantleMeltMass Value
}

// NewPlanet returns an Earth-like planet with a 2000 K surface.
func NewPlanet() Planet {
	return Planet{
		SurfaceTemperature: Scalar(2000.0),
		PlanetMass:         Scalar(EarthMass),
		SurfaceRadius:      Scalar(EarthRadius),
		MantleMeltMass:     Scalar(EarthMantleMeltMass),
	}
}

// withDefaults fills any zero-length field from NewPlanet.
func (p Planet) withDefaults() Planet {
	d := NewPlanet()
	if len(p.SurfaceTemperature) == 0 {
		p.SurfaceTemperature = d.SurfaceTemperature
	}
	if len(p.PlanetMass) == 0 {
		p.PlanetMass = d.PlanetMass
	}
	if len(p.SurfaceRadius) == 0 {
		p.SurfaceRadius = d.SurfaceRadius
	}
	if len(p.MantleMeltMass) == 0 {
		p.MantleMeltMass = d.MantleMeltMass
	}
	return p
}

// BatchLen validates field shapes and returns the planet's batch length.
func (p Planet) BatchLen() (int, error) {
	p = p.withDefaults()
	return BatchLen(p.SurfaceTemperature, p.PlanetMass, p.SurfaceRadius, p.MantleMeltMass)
}

// Instance extracts the scalar parameters of batch element i.
func (p Planet) Instance(i int) PlanetInstance {
	p = p.withDefaults()
	mass := p.PlanetMass.At(i)
	radius := p.SurfaceRadius.At(i)
	return PlanetInstance{
		SurfaceTemperature: p.SurfaceTemperature.At(i),
		PlanetMass:         mass,
		SurfaceRadius:      radius,
		MantleMeltMass:     p.MantleMeltMass.At(i),
		SurfaceGravity:     GravitationalConstant * mass / (radius * radius),
		SurfaceArea:        4 * math.Pi * radius * radius,
	}
}

// PlanetInstance is one batch element of a Planet with derived quantities.
type PlanetInstance struct {
	SurfaceTemperature float64
	PlanetMass         float64
	SurfaceRadius      float64
	MantleMeltMass     float64
	SurfaceGravity     float64
	SurfaceArea        float64
}
