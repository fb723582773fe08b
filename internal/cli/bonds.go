package cli

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/moleview/moleview/internal/config"
	v3 "github.com/moleview/moleview/v3"
)

// inferBonds assigns the bonds of mol from coords with the method in b. When
// the covalent method can't be used because an element has no covalent
// radius, the distance cutoffs are used instead.
func inferBonds(mol *chem.Molecule, coords *v3.Matrix, b config.Bonds) error {
	if b.BondMethod == chem.BondsCutoff {
		if err := chem.AssignBondsCutoff(coords, mol, b.BondCutoff, b.HydrogenCutoff); err != nil {
			return goerr.Wrap(err, "failed to assign bonds by distance cutoff")
		}
		return nil
	}

	err := chem.AssignBonds(coords, mol, b.BondTolerance)
	if err == nil {
		return nil
	}
	slog.Default().Warn("covalent radii missing, using distance cutoffs", slog.Any("error", err))
	if err := chem.AssignBondsCutoff(coords, mol, b.BondCutoff, b.HydrogenCutoff); err != nil {
		return goerr.Wrap(err, "failed to assign bonds by distance cutoff")
	}
	return nil
}
