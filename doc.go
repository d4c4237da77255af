/*
Package atmodeller computes chemical equilibrium between a planet's molten
interior and its atmosphere. Given a collection of gas and condensed species,
planetary parameters and a set of elemental mass or fugacity constraints, it
solves the coupled mass-action and mass-balance system for the partial
pressures, activities and dissolved inventories of every species.

The entry point is InteriorAtmosphere:

	h2o, _ := chem.CreateGas("H2O_g")
	h2, _ := chem.CreateGas("H2_g")
	o2, _ := chem.CreateGas("O2_g")

	species, err := chem.NewCollection(h2o, h2, o2)
	// ...
	ia, err := atmodeller.New(species)
	out, err := ia.Solve(ctx, &atmodeller.SolveRequest{
		Planet:          chem.NewPlanet(),
		MassConstraints: map[string]chem.Value{"H": {1.55e20}},
		FugacityConstraints: map[string]chem.FugacityConstraint{
			"O2_g": thermo.IronWustiteBuffer{},
		},
	})

All request values are batch-aware: supplying length-n slices solves n
independent planets in one call.
*/
package atmodeller
