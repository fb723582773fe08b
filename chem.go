/*
 * chem.go, part of moleview.
 *
 *
 * Copyright 2026 The moleview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"fmt"

	v3 "github.com/moleview/moleview/v3"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

//Atom contains the information of an atom, except for the coordinates,
//which are stored in a v3.Matrix.
type Atom struct {
	Name    string //PDB atom name, or the label read from an XYZ file
	ID      int    //serial number in the file, starting from 1
	index   int
	MolName string
	MolID   int
	Chain   string
	Mass    float64
	Covrad  float64
	Vdw     float64
	Symbol  string
	Het     bool //is hetatm in the pdb file?
	Bonds   []*Bond
}

//Atom methods

//Index returns the index of the atom in its topology, as set by FillIndexes.
func (A *Atom) Index() int {
	return A.index
}

//SetSymbol sets the element symbol of the atom, in its canonical form, and
//fills the element-dependent fields.
func (A *Atom) SetSymbol(symbol string) {
	A.Symbol = NormalizeSymbol(symbol)
	A.Mass = symbolMass[A.Symbol]
	A.Covrad = symbolCovrad[A.Symbol]
	A.Vdw = symbolVdwrad[A.Symbol]
}

//BondedTo returns the atoms bonded to A.
func (A *Atom) BondedTo() []*Atom {
	ret := make([]*Atom, 0, len(A.Bonds))
	for _, b := range A.Bonds {
		ret = append(ret, b.Cross(A))
	}
	return ret
}

func (A *Atom) String() string {
	return fmt.Sprintf("%s%d", A.Symbol, A.ID)
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates)
type Topology struct {
	Atoms []*Atom
}

//NewTopology makes a topology with ats atoms and returns it.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, newCError("NewTopology", "Supplied a nil atom slice")
	}
	top := &Topology{Atoms: ats}
	top.FillIndexes()
	return top, nil
}

/*Topology methods*/

//FillIndexes sets the index of each atom to its position in the topology.
func (T *Topology) FillIndexes() {
	for i, v := range T.Atoms {
		v.index = i
	}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Masses returns a slice of float64 with the masses of the atoms in the topology, or
//an error if any atom has a mass of zero.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i, v := range T.Atoms {
		if v.Mass == 0 {
			return nil, newCError("Topology.Masses", "Not all the masses have been obtained: atom %d (%s)", i, v.Symbol)
		}
		mass[i] = v.Mass
	}
	return mass, nil
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//coordinates, is stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Comments []string //one per frame, as read from the file.
}

//NewMolecule makes a molecule with ats atoms and coords coordinates and returns it.
//It returns an error if one of the slices is nil or the number of atoms and
//coordinates don't match.
func NewMolecule(ats Atomer, coords []*v3.Matrix) (*Molecule, error) {
	if ats == nil {
		return nil, newCError("NewMolecule", "Supplied a nil Topology")
	}
	if coords == nil {
		return nil, newCError("NewMolecule", "Supplied a nil Coords slice")
	}
	mol := new(Molecule)
	top, ok := ats.(*Topology)
	if ok {
		mol.Topology = top
	} else {
		mol.Topology = new(Topology)
		mol.Atoms = make([]*Atom, ats.Len())
		for i := 0; i < ats.Len(); i++ {
			mol.Atoms[i] = ats.Atom(i)
		}
	}
	mol.FillIndexes()
	mol.Coords = coords
	mol.Comments = make([]string, len(coords))
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//Frame returns the ith coordinate set of the molecule. Panics if out of range.
func (M *Molecule) Frame(i int) *v3.Matrix {
	if i < 0 || i >= len(M.Coords) {
		panic(ErrIndexOutOfRange)
	}
	return M.Coords[i]
}

//NFrames returns the number of coordinate sets in the molecule.
func (M *Molecule) NFrames() int {
	return len(M.Coords)
}

//Coord returns a view of the coordinates of atom atom in frame frame.
func (M *Molecule) Coord(atom, frame int) *v3.Matrix {
	return M.Frame(frame).VecView(atom)
}

//AddFrame appends a new set of coordinates to the molecule.
func (M *Molecule) AddFrame(newframe *v3.Matrix, comment string) error {
	if newframe.NVecs() != M.Len() {
		return newCError("Molecule.AddFrame", "Frame has %d atoms, the molecule has %d", newframe.NVecs(), M.Len())
	}
	M.Coords = append(M.Coords, newframe)
	M.Comments = append(M.Comments, comment)
	return nil
}

//Comment returns the comment line of frame i, or the empty string.
func (M *Molecule) Comment(i int) string {
	if i < 0 || i >= len(M.Comments) {
		return ""
	}
	return M.Comments[i]
}

//Corrupted checks whether the molecule is consistent, i.e. all coordinate
//sets have as many vectors as the topology has atoms. Returns an error
//describing the first problem found, or nil.
func (M *Molecule) Corrupted() error {
	if M.Topology == nil {
		return newCError("Molecule.Corrupted", "Molecule has no topology")
	}
	if len(M.Coords) == 0 {
		return newCError("Molecule.Corrupted", "Molecule has no coordinates")
	}
	for i, v := range M.Coords {
		if v == nil {
			return newCError("Molecule.Corrupted", "Frame %d is nil", i)
		}
		if v.NVecs() != M.Len() {
			return newCError("Molecule.Corrupted", "Frame %d has %d atoms, the topology has %d", i, v.NVecs(), M.Len())
		}
	}
	return nil
}
