package atmodeller_test

import (
	"context"
	"fmt"
	"log"

	"github.com/felixlaga/atmodeller"
	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

// Example solves a minimal hydrogen atmosphere: one Earth ocean of hydrogen
// over a 1000 K magma ocean, oxygen pinned to the iron-wustite buffer.
func Example() {
	h2o, err := chem.CreateGas("H2O_g")
	if err != nil {
		log.Fatal(err)
	}
	h2, err := chem.CreateGas("H2_g")
	if err != nil {
		log.Fatal(err)
	}
	o2, err := chem.CreateGas("O2_g")
	if err != nil {
		log.Fatal(err)
	}

	species, err := chem.NewCollection(h2o, h2, o2)
	if err != nil {
		log.Fatal(err)
	}
	ia, err := atmodeller.New(species)
	if err != nil {
		log.Fatal(err)
	}

	planet := chem.NewPlanet()
	planet.SurfaceTemperature = chem.Scalar(1000.0)

	out, err := ia.Solve(context.Background(), &atmodeller.SolveRequest{
		Planet: planet,
		MassConstraints: map[string]chem.Value{
			"H": chem.Scalar(chem.EarthOceansToHydrogenMass(1)),
		},
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("converged:", out.AllConverged())
	fmt.Println("species:", len(out.QuickLookKeys()))
	// Output:
	// converged: true
	// species: 3
}
