package chemgraph

import (
	"testing"

	chem "github.com/moleview/moleview"
)

func bondedMolecule(Te *testing.T, name string) *chem.Molecule {
	mol, err := chem.XYZRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if err := chem.AssignBonds(mol.Coords[0], mol, -1); err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestFragments(Te *testing.T) {
	mol := bondedMolecule(Te, "../test/twowaters.xyz")
	top := TopologyFromChem(mol)
	frags := top.Fragments()
	if len(frags) != 2 {
		Te.Fatalf("Expected 2 fragments, got %d: %v", len(frags), frags)
	}
	exp := [][]int{{0, 1, 2}, {3, 4, 5}}
	for i, f := range frags {
		for j, v := range f {
			if v != exp[i][j] {
				Te.Errorf("Fragment %d: expected %v, got %v", i, exp[i], f)
				break
			}
		}
	}
	if top.NBonds() != 4 || top.Rings() != 0 {
		Te.Errorf("Expected 4 bonds and no rings, got %d and %d", top.NBonds(), top.Rings())
	}
	if p := top.ShortestPath(1, 4); p != nil {
		Te.Errorf("Atoms in different molecules should have no path, got %v", p)
	}
}

func TestShortestPath(Te *testing.T) {
	mol := bondedMolecule(Te, "../test/benzene.xyz")
	top := TopologyFromChem(mol)
	if top.Rings() != 1 {
		Te.Errorf("Benzene has one ring, got %d", top.Rings())
	}
	//from the hydrogen on C0 to the one on C3, across the ring.
	p := top.ShortestPath(6, 9)
	if len(p) != 6 {
		Te.Fatalf("Expected a path of 6 atoms, got %v", p)
	}
	if p[0] != 6 || p[1] != 0 || p[4] != 3 || p[5] != 9 {
		Te.Errorf("Wrong path %v", p)
	}
	if top.Atom(int64(p[1])).Symbol != "C" {
		Te.Errorf("Wrong atom in path %v", top.Atom(int64(p[1])))
	}
	if p := top.ShortestPath(0, 0); len(p) != 1 {
		Te.Errorf("The path from an atom to itself should contain only the atom, got %v", p)
	}
	if p := top.ShortestPath(0, 100); p != nil {
		Te.Errorf("Paths to atoms that don't exist should be nil, got %v", p)
	}
}
