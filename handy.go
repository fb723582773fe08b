/*
 * handy.go, part of moleview.
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
	"math"
	"sort"
	"strings"
)

//Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

//Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

//ElementCount returns how many atoms of each element there are in mol.
func ElementCount(mol Atomer) map[string]int {
	ret := make(map[string]int)
	for i := 0; i < mol.Len(); i++ {
		ret[mol.Atom(i).Symbol]++
	}
	return ret
}

//Elements returns the element symbols present in mol, in order of first appearance.
func Elements(mol Atomer) []string {
	seen := make(map[string]bool)
	ret := make([]string, 0)
	for i := 0; i < mol.Len(); i++ {
		s := mol.Atom(i).Symbol
		if !seen[s] {
			seen[s] = true
			ret = append(ret, s)
		}
	}
	return ret
}

//Formula returns the chemical formula of mol in Hill order: carbon first,
//hydrogen second and the rest alphabetically. If there is no carbon, all
//elements, hydrogen included, are sorted alphabetically.
func Formula(mol Atomer) string {
	count := ElementCount(mol)
	symbols := make([]string, 0, len(count))
	for k := range count {
		symbols = append(symbols, k)
	}
	_, hasC := count["C"]
	sort.Slice(symbols, func(i, j int) bool {
		if hasC {
			ri, rj := hillRank(symbols[i]), hillRank(symbols[j])
			if ri != rj {
				return ri < rj
			}
		}
		return symbols[i] < symbols[j]
	})
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if count[s] > 1 {
			fmt.Fprintf(&b, "%d", count[s])
		}
	}
	return b.String()
}

func hillRank(s string) int {
	switch s {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}
