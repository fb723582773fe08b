/*
 * geometric.go, part of moleview.
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
	"math"

	v3 "github.com/moleview/moleview/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Angle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm(2) * v2.Norm(2)
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Distance returns the distance between the first vectors of a and b.
func Distance(a, b *v3.Matrix) float64 {
	t := v3.Zeros(1)
	t.Sub(a.VecView(0), b.VecView(0))
	return t.Norm(2)
}

//Dihedral calculates the dihedral between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. The result is in radians, in (-pi, pi].
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(PanicMsg("Dihedral: Vector " + string(rune('a'+number)) + " is nil"))
		}
	}
	bmina := v3.Zeros(1)
	cminb := v3.Zeros(1)
	dminc := v3.Zeros(1)
	bmina.Sub(b, a)
	cminb.Sub(c, b)
	dminc.Sub(d, c)
	n1 := v3.Zeros(1)
	n2 := v3.Zeros(1)
	n1.Cross(bmina, cminb)
	n2.Cross(cminb, dminc)
	m := v3.Zeros(1)
	m.Cross(n1, cminb)
	m.Scale(1/cminb.Norm(2), m)
	x := n1.Dot(n2)
	y := m.Dot(n2)
	return math.Atan2(y, x)
}

//Centroid returns the geometric center of coords, as a 1x3 matrix.
func Centroid(coords *v3.Matrix) *v3.Matrix {
	return weightedCenter(coords, nil)
}

//CenterOfMass returns the center of mass of the atoms represented by the coordinates in geometry
//and the masses in mass, and an error. If mass is nil, it is taken from mol.
func CenterOfMass(geometry *v3.Matrix, mol Masser, mass []float64) (*v3.Matrix, error) {
	if mass == nil {
		var err error
		mass, err = mol.Masses()
		if err != nil {
			return nil, errDecorate(err, "CenterOfMass")
		}
	}
	if len(mass) != geometry.NVecs() {
		return nil, newCError("CenterOfMass", "%d masses given for %d atoms", len(mass), geometry.NVecs())
	}
	if floats.Sum(mass) <= appzero {
		return nil, newCError("CenterOfMass", "Total mass is zero")
	}
	return weightedCenter(geometry, mass), nil
}

func weightedCenter(coords *v3.Matrix, weights []float64) *v3.Matrix {
	ret := v3.Zeros(1)
	col := make([]float64, coords.NVecs())
	for j := 0; j < 3; j++ {
		mat.Col(col, j, coords.Dense)
		ret.Set(0, j, stat.Mean(col, weights))
	}
	return ret
}

//BoundingBox returns the minimum and maximum value of each cartesian
//coordinate in coords.
func BoundingBox(coords *v3.Matrix) (lo, hi [3]float64) {
	col := make([]float64, coords.NVecs())
	for j := 0; j < 3; j++ {
		mat.Col(col, j, coords.Dense)
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
	}
	return lo, hi
}

//MomentTensor returns the moment tensor of the coordinates in A, with respect to their
//center of mass. If masses is nil, all atoms are assigned a mass of 1.
func MomentTensor(A *v3.Matrix, masses []float64) (*v3.Matrix, error) {
	n := A.NVecs()
	if masses == nil {
		masses = make([]float64, n)
		floats.AddConst(1, masses)
	}
	if len(masses) != n {
		return nil, newCError("MomentTensor", "%d masses given for %d atoms", len(masses), n)
	}
	center, err := CenterOfMass(A, nil, masses)
	if err != nil {
		return nil, errDecorate(err, "MomentTensor")
	}
	centered := v3.Zeros(n)
	centered.SubVec(A, center)
	ret := v3.Zeros(3)
	for i := 0; i < n; i++ {
		r := centered.RawRowView(i)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				ret.Set(j, k, ret.At(j, k)+masses[i]*r[j]*r[k])
			}
		}
	}
	return ret, nil
}

//PrincipalAxes returns the principal axes of the coordinates in A (as the rows
//of the returned matrix) and the corresponding eigenvalues of the moment tensor, in
//ascending order. The first axis is thus the direction along which the atoms spread
//the least. If masses is nil, all atoms are equally weighted.
func PrincipalAxes(A *v3.Matrix, masses []float64) (*v3.Matrix, []float64, error) {
	tensor, err := MomentTensor(A, masses)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalAxes")
	}
	evecs, evals, err := v3.EigenWrap(tensor, -1)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalAxes")
	}
	return evecs, evals, nil
}
