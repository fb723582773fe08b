/*
 * bonds.go, part of moleview.
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
	"sort"

	v3 "github.com/moleview/moleview/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
	Order float64 //Order 0 means undetermined
}

//Cross returns the atom bonded to origin by B. Panics if origin is
//not part of the bond.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic(ErrBondNotInAtom) //has to be a programming error.
}

//return a new *Bond slice with the element id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds))
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

//RemoveBond removes the bond b from both of its atoms.
func RemoveBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
	if len(b.At1.Bonds) == lenb1 {
		return newCError("RemoveBond", "Failed to remove bond Index:%d from atom Index:%d", b.Index, b.At1.index)
	}
	if len(b.At2.Bonds) == lenb2 {
		return newCError("RemoveBond", "Failed to remove bond Index:%d from atom Index:%d", b.Index, b.At2.index)
	}
	return nil
}

//Bond detection methods.
const (
	BondsCovalent = "covalent" //sum of covalent radii plus a tolerance
	BondsCutoff   = "cutoff"   //fixed distance cutoffs
)

//Default distances (A) for AssignBondsCutoff.
const (
	DefaultBondCutoff     = 2.0
	DefaultHydrogenCutoff = 1.2
)

//DefaultBondTolerance is the tolerance (A) added to the sum of covalent radii
//when assigning bonds.
const DefaultBondTolerance = bondtol

//AssignBonds assigns bonds to a molecule based on a simple distance
//criterion, similar to that described in DOI:10.1186/1758-2946-3-33.
//Two atoms are bonded if their distance is larger than 0.63 A and smaller
//than the sum of their covalent radii plus tol. A negative tol means
//DefaultBondTolerance. Bonds previously present in the atoms are discarded.
//Atoms with more bonds than their element allows lose their longest ones.
func AssignBonds(coord *v3.Matrix, mol AtomIndexesFiller, tol float64) error {
	if tol < 0 {
		tol = bondtol
	}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if symbolCovrad[at.Symbol] == 0 {
			return newCError("AssignBonds", "Couldn't find the covalent radius for %s %d", at.Symbol, i)
		}
	}
	bonded := func(at1, at2 *Atom, d float64) bool {
		return d > tooclose && d < symbolCovrad[at1.Symbol]+symbolCovrad[at2.Symbol]+tol
	}
	if err := assignBonds(coord, mol, bonded); err != nil {
		return errDecorate(err, "AssignBonds")
	}
	//Now we check that no atom has too many bonds.
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		maxb := symbolMaxBonds[at.Symbol]
		if maxb == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		sort.SliceStable(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for len(at.Bonds) > maxb {
			err := RemoveBond(at.Bonds[len(at.Bonds)-1]) //we remove the longest bond
			if err != nil {
				return errDecorate(err, "AssignBonds")
			}
		}
	}
	reindexBonds(mol)
	return nil
}

//AssignBondsCutoff assigns bonds with fixed distance cutoffs: two atoms are
//bonded if they are closer than cutoff, or than hcutoff when one of them is a
//hydrogen. It needs no element data, so it works for any symbol.
//Non-positive cutoffs mean DefaultBondCutoff and DefaultHydrogenCutoff.
//Bonds previously present in the atoms are discarded.
func AssignBondsCutoff(coord *v3.Matrix, mol AtomIndexesFiller, cutoff, hcutoff float64) error {
	if cutoff <= 0 {
		cutoff = DefaultBondCutoff
	}
	if hcutoff <= 0 {
		hcutoff = DefaultHydrogenCutoff
	}
	bonded := func(at1, at2 *Atom, d float64) bool {
		if at1.Symbol == "H" || at2.Symbol == "H" {
			return d <= hcutoff
		}
		return d <= cutoff
	}
	if err := assignBonds(coord, mol, bonded); err != nil {
		return errDecorate(err, "AssignBondsCutoff")
	}
	return nil
}

//assignBonds clears the bonds of mol and bonds every pair of atoms for
//which bonded returns true.
func assignBonds(coord *v3.Matrix, mol AtomIndexesFiller, bonded func(at1, at2 *Atom, d float64) bool) error {
	//quadratic in the number of atoms. Not thought for
	//proteins or macromolecules.
	tot := mol.Len()
	if coord.NVecs() != tot {
		return newCError("assignBonds", "%d coordinates given for %d atoms", coord.NVecs(), tot)
	}
	mol.FillIndexes()
	for i := 0; i < tot; i++ {
		mol.Atom(i).Bonds = nil
	}
	var nextIndex int
	t3 := v3.Zeros(1)
	for i := 0; i < tot; i++ {
		t1 := coord.VecView(i)
		at1 := mol.Atom(i)
		for j := i + 1; j < tot; j++ {
			at2 := mol.Atom(j)
			t3.Sub(coord.VecView(j), t1)
			d := t3.Norm(2)
			if bonded(at1, at2, d) {
				b := &Bond{Index: nextIndex, Dist: d, At1: at1, At2: at2}
				at1.Bonds = append(at1.Bonds, b)
				at2.Bonds = append(at2.Bonds, b)
				nextIndex++
			}
		}
	}
	return nil
}

//reindexBonds makes the indexes of the surviving bonds contiguous,
//following the order of their first atom.
func reindexBonds(mol Atomer) {
	b := Bonds(mol)
	for i, v := range b {
		v.Index = i
	}
}

//Bonds returns all the bonds in mol, each one only once, sorted by index.
func Bonds(mol Atomer) []*Bond {
	seen := make(map[*Bond]bool)
	ret := make([]*Bond, 0, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		for _, b := range mol.Atom(i).Bonds {
			if seen[b] {
				continue
			}
			seen[b] = true
			ret = append(ret, b)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}
