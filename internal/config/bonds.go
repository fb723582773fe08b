package config

import (
	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/urfave/cli/v3"
)

// Bonds holds the bond detection settings shared by the commands
type Bonds struct {
	BondMethod     string
	BondTolerance  float64
	BondCutoff     float64
	HydrogenCutoff float64
}

// DefaultBonds returns the settings used when no flag is given
func DefaultBonds() Bonds {
	return Bonds{
		BondMethod:     chem.BondsCovalent,
		BondTolerance:  chem.DefaultBondTolerance,
		BondCutoff:     chem.DefaultBondCutoff,
		HydrogenCutoff: chem.DefaultHydrogenCutoff,
	}
}

// Flags returns CLI flags for bond detection
func (c *Bonds) Flags() []cli.Flag {
	def := DefaultBonds()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bond-method",
			Usage:       "How bonds are detected: covalent (sum of covalent radii) or cutoff (fixed distances)",
			Value:       def.BondMethod,
			Destination: &c.BondMethod,
			Sources:     cli.EnvVars("MOLEVIEW_BOND_METHOD"),
		},
		&cli.FloatFlag{
			Name:        "bond-tolerance",
			Usage:       "Tolerance added to the sum of covalent radii to detect bonds, in A",
			Value:       def.BondTolerance,
			Destination: &c.BondTolerance,
		},
		&cli.FloatFlag{
			Name:        "bond-cutoff",
			Usage:       "Longest bond between heavy atoms for the cutoff method, in A",
			Value:       def.BondCutoff,
			Destination: &c.BondCutoff,
		},
		&cli.FloatFlag{
			Name:        "hydrogen-cutoff",
			Usage:       "Longest bond to a hydrogen for the cutoff method, in A",
			Value:       def.HydrogenCutoff,
			Destination: &c.HydrogenCutoff,
		},
	}
}

// Validate checks the bond detection settings
func (c *Bonds) Validate() error {
	switch c.BondMethod {
	case "", chem.BondsCovalent, chem.BondsCutoff:
	default:
		return goerr.New("invalid bond method, expected covalent or cutoff", goerr.V("bond-method", c.BondMethod))
	}
	if c.BondTolerance < 0 {
		return goerr.New("bond tolerance can't be negative", goerr.V("bond-tolerance", c.BondTolerance))
	}
	if c.BondCutoff <= 0 || c.HydrogenCutoff <= 0 {
		return goerr.New("bond cutoffs must be positive",
			goerr.V("bond-cutoff", c.BondCutoff),
			goerr.V("hydrogen-cutoff", c.HydrogenCutoff),
		)
	}
	return nil
}
