/*
 * atomicdata.go, part of moleview.
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
	"strconv"
	"strings"
	"unicode"
)

//atomicSymbols holds the element symbols indexed by atomic number.
//Index 0 is a dummy atom.
var atomicSymbols = []string{"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
}

var symbolNumber = func() map[string]int {
	m := make(map[string]int, len(atomicSymbols))
	for i, v := range atomicSymbols {
		m[v] = i
	}
	return m
}()

//A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.003,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.1,
	"Ca": 40.08,
	"Sc": 44.96,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"Ge": 72.63,
	"As": 74.92,
	"Se": 78.96,
	"Br": 79.904,
	"Kr": 83.80,
	"Rb": 85.47,
	"Sr": 87.62,
	"Y":  88.91,
	"Zr": 91.22,
	"Nb": 92.91,
	"Mo": 95.95,
	"Ru": 101.07,
	"Rh": 102.91,
	"Pd": 106.42,
	"Ag": 107.87,
	"Cd": 112.41,
	"In": 114.82,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.60,
	"I":  126.90,
	"Xe": 131.29,
	"Cs": 132.91,
	"Ba": 137.33,
	"La": 138.91,
	"Hf": 178.49,
	"Ta": 180.95,
	"W":  183.84,
	"Re": 186.21,
	"Os": 190.23,
	"Ir": 192.22,
	"Pt": 195.08,
	"Au": 196.97,
	"Hg": 200.59,
	"Tl": 204.38,
	"Pb": 207.2,
	"Bi": 208.98,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 in the reference. H only keeps one bond, so the extra ones are removed later.
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Sc": 1.70,
	"Ti": 1.60,
	"V":  1.53,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.2,
	"Br": 1.2,
	"Kr": 1.16,
	"Rb": 2.20,
	"Sr": 1.95,
	"Y":  1.90,
	"Zr": 1.75,
	"Nb": 1.64,
	"Mo": 1.54,
	"Tc": 1.47,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Cd": 1.44,
	"In": 1.42,
	"Sn": 1.39,
	"Sb": 1.39,
	"Te": 1.38,
	"I":  1.39,
	"Xe": 1.40,
	"Cs": 2.44,
	"Ba": 2.15,
	"La": 2.07,
	"Hf": 1.75,
	"Ta": 1.70,
	"W":  1.62,
	"Re": 1.51,
	"Os": 1.44,
	"Ir": 1.41,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
	"Tl": 1.45,
	"Pb": 1.46,
	"Bi": 1.48,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"He": 1.40,
	"Li": 1.82,
	"B":  1.92,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"F":  1.47,
	"Ne": 1.54,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Al": 1.84,
	"Cl": 1.75,
	"Ar": 1.88,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Ni": 1.63,
	"Si": 2.10,
	"Be": 1.53,
	"Br": 1.83,
	"I":  1.98,
	"Pt": 1.75,
	"Au": 1.66,
	"Ag": 1.72,
	"Pd": 1.63,
}

//Atomic radii (A) indexed by atomic number, used to size atoms in
//drawings. Index 0 is the dummy atom.
var atomicRadii = []float64{0,
	0.23, 0.93, 0.68, 0.35, 0.83, 0.68, 0.68, 0.68, 0.64, 1.12,
	0.97, 1.1, 1.35, 1.2, 0.75, 1.02, 0.99, 1.57, 1.33, 0.99,
	1.44, 1.47, 1.33, 1.35, 1.35, 1.34, 1.33, 1.5, 1.52, 1.45,
	1.22, 1.17, 1.21, 1.22, 1.21, 1.91, 1.47, 1.12, 1.78, 1.56,
	1.48, 1.47, 1.35, 1.4, 1.45, 1.5, 1.59, 1.69, 1.63, 1.46,
	1.46, 1.47, 1.4, 1.98, 1.67, 1.34, 1.87, 1.83, 1.82, 1.81,
	1.8, 1.8, 1.99, 1.79, 1.76, 1.75, 1.74, 1.73, 1.72, 1.94,
	1.72, 1.57, 1.43, 1.37, 1.35, 1.37, 1.32, 1.5, 1.5, 1.7,
	1.55, 1.54, 1.54, 1.68, 1.7, 2.4,
}

//A map for checking that atoms don't
//have too many bonds. A value of 0 means
//undefined, i.e. that this atom shouldn't
//be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"N":  0, //ammonium and nitro groups
	"P":  0,
	"S":  0,
	"Se": 0,
	"Be": 0,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//CPK colors, as used by Jmol, in 0xRRGGBB form.
var symbolColor = map[string]uint32{
	"H":  0xFFFFFF,
	"He": 0xD9FFFF,
	"Li": 0xCC80FF,
	"Be": 0xC2FF00,
	"B":  0xFFB5B5,
	"C":  0x909090,
	"N":  0x3050F8,
	"O":  0xFF0D0D,
	"F":  0x90E050,
	"Ne": 0xB3E3F5,
	"Na": 0xAB5CF2,
	"Mg": 0x8AFF00,
	"Al": 0xBFA6A6,
	"Si": 0xF0C8A0,
	"P":  0xFF8000,
	"S":  0xFFFF30,
	"Cl": 0x1FF01F,
	"Ar": 0x80D1E3,
	"K":  0x8F40D4,
	"Ca": 0x3DFF00,
	"Ti": 0xBFC2C7,
	"V":  0xA6A6AB,
	"Cr": 0x8A99C7,
	"Mn": 0x9C7AC7,
	"Fe": 0xE06633,
	"Co": 0xF090A0,
	"Ni": 0x50D050,
	"Cu": 0xC88033,
	"Zn": 0x7D80B0,
	"Se": 0xFFA100,
	"Br": 0xA62929,
	"Ru": 0x248F8F,
	"Rh": 0x0A7D8C,
	"Pd": 0x006985,
	"Ag": 0xC0C0C0,
	"Sn": 0x668080,
	"I":  0x940094,
	"Ir": 0x175487,
	"Pt": 0xD0D0E0,
	"Au": 0xFFD123,
	"Hg": 0xB8B8D0,
	"Pb": 0x575961,
}

//DefaultColor is used for elements without a CPK color.
const DefaultColor uint32 = 0xFF1493

//NormalizeSymbol returns the canonical capitalization of an element symbol
//("CL" and "cl" give "Cl"). An atomic number is translated to its symbol.
//Trailing digits and labels, as in "C1" or "H12a", are removed when what
//remains is a valid symbol. Unknown symbols are returned capitalized.
func NormalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if z, err := strconv.Atoi(s); err == nil {
		if z > 0 && z < len(atomicSymbols) {
			return atomicSymbols[z]
		}
		return s
	}
	canon := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	if _, ok := symbolNumber[canon]; ok {
		return canon
	}
	letters := canon
	if i := strings.IndexFunc(canon, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
		letters = canon[:i]
	}
	for _, cand := range []string{letters, letters[:min(len(letters), 2)], letters[:min(len(letters), 1)]} {
		if _, ok := symbolNumber[cand]; ok && cand != "" {
			return cand
		}
	}
	return canon
}

//AtomicNumber returns the atomic number for the element symbol, or 0
//if the symbol is not known.
func AtomicNumber(symbol string) int {
	return symbolNumber[symbol]
}

//KnownElement returns true if symbol is a valid element symbol.
func KnownElement(symbol string) bool {
	z, ok := symbolNumber[symbol]
	return ok && z > 0
}

//Mass returns the atomic mass for the element symbol, or 0 if unknown.
func Mass(symbol string) float64 { return symbolMass[symbol] }

//Covrad returns the covalent radius (A) for the element symbol, or 0 if unknown.
func Covrad(symbol string) float64 { return symbolCovrad[symbol] }

//Vdwrad returns the van der Waals radius (A) for the element symbol, or 0 if unknown.
func Vdwrad(symbol string) float64 { return symbolVdwrad[symbol] }

//AtomicRadius returns the atomic radius (A) for the element symbol, or 0 if unknown.
func AtomicRadius(symbol string) float64 {
	z := symbolNumber[symbol]
	if z <= 0 || z >= len(atomicRadii) {
		return 0
	}
	return atomicRadii[z]
}

//MaxBonds returns the maximum number of bonds allowed for the element,
//0 meaning no limit.
func MaxBonds(symbol string) int { return symbolMaxBonds[symbol] }

//Color returns the CPK color for the element as r, g, b components.
func Color(symbol string) (r, g, b uint8) {
	c, ok := symbolColor[symbol]
	if !ok {
		c = DefaultColor
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
