/*
 * files.go, part of moleview.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	v3 "github.com/moleview/moleview/v3"
)

//ReadFile reads the structure file name, choosing the format from its
//extension (see Format). Compressed files (.gz, .zst) are decompressed
//on the fly.
func ReadFile(name string) (*Molecule, error) {
	mol, err := ReadFileAs(name, Format(name))
	return mol, errDecorate(err, "ReadFile")
}

//ReadFileAs reads the structure file name in the given format ("xyz" or "pdb").
func ReadFileAs(name, format string) (*Molecule, error) {
	var mol *Molecule
	var err error
	switch strings.ToLower(format) {
	case "xyz":
		mol, err = XYZRead(name)
	case "pdb":
		mol, err = PDBRead(name)
	default:
		return nil, newFError("ReadFileAs", name, "unknown", 0, "Unknown structure file format %q", format)
	}
	return mol, errDecorate(err, "ReadFileAs")
}

//WriteFile writes the frame frame of mol to the file name, in the format
//given by its extension.
func WriteFile(name string, mol *Molecule, frame int) error {
	if frame < 0 || frame >= mol.NFrames() {
		return newCError("WriteFile", "Frame %d requested, the molecule has %d", frame, mol.NFrames())
	}
	var err error
	switch Format(name) {
	case "xyz":
		err = XYZWrite(name, mol.Frame(frame), mol, mol.Comment(frame))
	case "pdb":
		err = PDBWrite(name, mol.Frame(frame), mol)
	default:
		return newFError("WriteFile", name, "unknown", 0, "Unknown structure file format")
	}
	return errDecorate(err, "WriteFile")
}

//XYZ family

//parseFloat parses a number as found in XYZ files, which can use the
//Fortran exponent markers: 1.0d-3, 1.0D-3 and 1.0*^-3 all mean 1.0e-3.
func parseFloat(s string) (float64, error) {
	s = strings.ToLower(s)
	s = strings.Replace(s, "*^", "e", 1)
	s = strings.Replace(s, "d", "e", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite coordinate %s", s)
	}
	return f, nil
}

//xyzPrealloc is the largest number of atoms for which room is
//reserved before the atom lines are read.
const xyzPrealloc = 1 << 16

//XYZRead reads an xyz file, returns a Molecule and an error.
//Files with more than one frame (multi-XYZ) give molecules with
//as many coordinate sets as frames.
func XYZRead(xyzname string) (*Molecule, error) {
	xyzfile, err := openStructure(xyzname)
	if err != nil {
		return nil, newFError("XYZRead", xyzname, "xyz", 0, "Unable to open file: %s", err)
	}
	defer xyzfile.Close()
	return xyzBufRead(bufio.NewReader(xyzfile), xyzname)
}

//XYZFileRead reads an XYZ stream from r. It behaves like XYZRead.
func XYZFileRead(r io.Reader) (*Molecule, error) {
	return xyzBufRead(bufio.NewReader(r), "")
}

//lineReader returns the lines of a stream, one at the time, keeping count.
type lineReader struct {
	s    *bufio.Scanner
	line int
}

func (l *lineReader) next() (string, bool) {
	if !l.s.Scan() {
		return "", false
	}
	l.line++
	return strings.TrimRight(l.s.Text(), "\r"), true
}

func xyzBufRead(xyz io.Reader, xyzname string) (*Molecule, error) {
	sc := bufio.NewScanner(xyz)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lr := &lineReader{s: sc}
	var top *Topology
	var frames []*v3.Matrix
	var comments []string
	for {
		line, ok := lr.next()
		for ok && strings.TrimSpace(line) == "" {
			//blank lines between and after frames are tolerated.
			line, ok = lr.next()
		}
		if !ok {
			break
		}
		fnum := len(frames)
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || natoms <= 0 || natoms > math.MaxInt/3 {
			return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: expected a positive number of atoms, got %q", fnum, strings.TrimSpace(line))
		}
		if top != nil && natoms != top.Len() {
			return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d has %d atoms, the first frame has %d", fnum, natoms, top.Len())
		}
		comment, ok := lr.next()
		if !ok {
			return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: file ends before the comment line", fnum)
		}
		//the count is not trusted until the atom lines are there.
		capacity := min(natoms, xyzPrealloc)
		var atoms []*Atom
		if top == nil {
			atoms = make([]*Atom, 0, capacity)
		}
		coords := make([]float64, 0, capacity*3)
		for i := 0; i < natoms; i++ {
			line, ok = lr.next()
			if !ok {
				return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: file ends after %d of %d atoms", fnum, i, natoms)
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: ill formed atom line %q", fnum, line)
			}
			for k := 0; k < 3; k++ {
				f, err := parseFloat(fields[k+1])
				if err != nil {
					return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: can't read coordinate %q", fnum, fields[k+1])
				}
				coords = append(coords, f)
			}
			if top != nil {
				if s := NormalizeSymbol(fields[0]); s != top.Atoms[i].Symbol {
					return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Frame %d: atom %d is %s, it was %s in the first frame", fnum, i+1, s, top.Atoms[i].Symbol)
				}
				continue
			}
			at := &Atom{Name: fields[0], ID: i + 1}
			at.SetSymbol(fields[0])
			atoms = append(atoms, at)
		}
		if top == nil {
			top, _ = NewTopology(atoms)
		}
		frame, _ := v3.NewMatrix(coords) //natoms>0, so this can't fail
		frames = append(frames, frame)
		comments = append(comments, strings.TrimSpace(comment))
	}
	if err := lr.s.Err(); err != nil {
		return nil, newFError("XYZRead", xyzname, "xyz", lr.line, "Error reading: %s", err)
	}
	if top == nil {
		return nil, newFError("XYZRead", xyzname, "xyz", 0, "Empty file")
	}
	mol, err := NewMolecule(top, frames)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol.Comments = comments
	return mol, nil
}

//XYZWrite writes the coords of mol in an XYZ file with name xyzname which will
//be created for that. If the file exist it will be overwritten.
func XYZWrite(xyzname string, coords *v3.Matrix, mol Atomer, comment string) error {
	out, err := createStructure(xyzname)
	if err != nil {
		return newFError("XYZWrite", xyzname, "xyz", 0, "Unable to create file: %s", err)
	}
	err = XYZFileWrite(out, coords, mol, comment)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = newFError("XYZWrite", xyzname, "xyz", 0, "Unable to close file: %s", err2)
	}
	return errDecorate(err, "XYZWrite")
}

//XYZStringWrite returns a string with the XYZ representation of coords and mol.
func XYZStringWrite(coords *v3.Matrix, mol Atomer, comment string) (string, error) {
	var b strings.Builder
	if err := XYZFileWrite(&b, coords, mol, comment); err != nil {
		return "", errDecorate(err, "XYZStringWrite")
	}
	return b.String(), nil
}

//XYZFileWrite writes coords and mol to out in XYZ format.
func XYZFileWrite(out io.Writer, coords *v3.Matrix, mol Atomer, comment string) error {
	if coords.NVecs() != mol.Len() {
		return newCError("XYZFileWrite", "%d coordinates given for %d atoms", coords.NVecs(), mol.Len())
	}
	comment = strings.ReplaceAll(comment, "\n", " ")
	if _, err := fmt.Fprintf(out, "%d\n%s\n", mol.Len(), comment); err != nil {
		return newCError("XYZFileWrite", "Failed to write header: %s", err)
	}
	for i := 0; i < mol.Len(); i++ {
		c := coords.RawRowView(i)
		if _, err := fmt.Fprintf(out, "%-2s  %12.6f %12.6f %12.6f\n", mol.Atom(i).Symbol, c[0], c[1], c[2]); err != nil {
			return newCError("XYZFileWrite", "Failed to write atom %d: %s", i, err)
		}
	}
	return nil
}

//PDB family

//symbolFromName tries to guess a chemical element symbol from a PDB atom name.
//Mostly based on AMBER names. It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 0 {
		return symbol, fmt.Errorf("Empty atom name")
	}
	if len(name) == 4 || name[0] == 'H' { //only Hs can have 4-char names in amber.
		symbol = "H"
	} else if name[0] == 'C' { //Ca is not considered here
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if strings.HasPrefix(name, "ZN") {
		symbol = "Zn"
	} else if strings.HasPrefix(name, "FE") {
		symbol = "Fe"
	} else if strings.HasPrefix(name, "MG") {
		symbol = "Mg"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}

//column returns line[a:b], trimmed, or the part of it that exists.
func column(line string, a, b int) string {
	if a >= len(line) {
		return ""
	}
	if b > len(line) {
		b = len(line)
	}
	return strings.TrimSpace(line[a:b])
}

//readPDBLine parses a valid ATOM or HETATM line of a PDB file. It returns an Atom
//with the info except for the coordinates, which are returned
//separately.
func readPDBLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	var err error
	if len(line) < 54 {
		return nil, coords, fmt.Errorf("Line too short")
	}
	for k := 0; k < 3; k++ {
		coords[k], err = strconv.ParseFloat(column(line, 30+k*8, 38+k*8), 64)
		if err != nil {
			return nil, coords, fmt.Errorf("Can't read coordinate %d: %s", k, err)
		}
	}
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, _ = strconv.Atoi(column(line, 6, 11)) //some programs write non-numeric serials
	atom.Name = column(line, 12, 16)
	atom.MolName = column(line, 17, 20)
	atom.Chain = column(line, 21, 22)
	atom.MolID, _ = strconv.Atoi(column(line, 22, 26))
	symbol := column(line, 76, 78)
	if symbol == "" {
		symbol, err = symbolFromName(atom.Name)
		if err != nil {
			return nil, coords, err
		}
	}
	atom.SetSymbol(symbol)
	return atom, coords, nil
}

//PDBRead reads the atomic entries for a PDB file. Each MODEL in the file
//becomes a frame of the returned molecule.
func PDBRead(pdbname string) (*Molecule, error) {
	pdbfile, err := openStructure(pdbname)
	if err != nil {
		return nil, newFError("PDBRead", pdbname, "pdb", 0, "Unable to open file: %s", err)
	}
	defer pdbfile.Close()
	return pdbBufRead(pdbfile, pdbname)
}

//PDBFileRead reads a PDB stream from r. It behaves like PDBRead.
func PDBFileRead(r io.Reader) (*Molecule, error) {
	return pdbBufRead(r, "")
}

func pdbBufRead(r io.Reader, pdbname string) (*Molecule, error) {
	sc := bufio.NewScanner(r)
	lr := &lineReader{s: sc}
	atoms := make([]*Atom, 0)
	frames := make([]*v3.Matrix, 0, 1)
	cur := make([]float64, 0)
	endFrame := func() error {
		if len(cur) == 0 {
			return nil
		}
		if len(frames) > 0 && len(cur) != len(atoms)*3 {
			return newFError("PDBRead", pdbname, "pdb", lr.line, "Model %d has %d atoms, the first model has %d", len(frames)+1, len(cur)/3, len(atoms))
		}
		m, _ := v3.NewMatrix(cur)
		frames = append(frames, m)
		cur = make([]float64, 0, len(atoms)*3)
		return nil
	}
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			at, c, err := readPDBLine(line)
			if err != nil {
				return nil, newFError("PDBRead", pdbname, "pdb", lr.line, "%s", err)
			}
			cur = append(cur, c[:]...)
			if len(frames) == 0 {
				//atom data other than coords is the same in all models so just read for the first.
				atoms = append(atoms, at)
			}
		case strings.HasPrefix(line, "ENDMDL"), strings.HasPrefix(line, "MODEL"):
			if err := endFrame(); err != nil {
				return nil, err
			}
		}
	}
	if err := lr.s.Err(); err != nil {
		return nil, newFError("PDBRead", pdbname, "pdb", lr.line, "Error reading: %s", err)
	}
	if err := endFrame(); err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, newFError("PDBRead", pdbname, "pdb", 0, "No atoms found")
	}
	top, _ := NewTopology(atoms)
	mol, err := NewMolecule(top, frames)
	return mol, errDecorate(err, "PDBRead")
}

//PDBWrite writes a PDB file for the coordinates coords of mol, with the
//file name pdbname.
func PDBWrite(pdbname string, coords *v3.Matrix, mol Atomer) error {
	out, err := createStructure(pdbname)
	if err != nil {
		return newFError("PDBWrite", pdbname, "pdb", 0, "Unable to create file: %s", err)
	}
	err = PDBFileWrite(out, coords, mol)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = newFError("PDBWrite", pdbname, "pdb", 0, "Unable to close file: %s", err2)
	}
	return errDecorate(err, "PDBWrite")
}

//PDBFileWrite writes coords and mol to out in PDB format.
func PDBFileWrite(out io.Writer, coords *v3.Matrix, mol Atomer) error {
	if coords.NVecs() != mol.Len() {
		return newCError("PDBFileWrite", "%d coordinates given for %d atoms", coords.NVecs(), mol.Len())
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH MOLEVIEW\n")
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		name, molname, chain := at.Name, at.MolName, at.Chain
		if len(name) > 4 || name == "" {
			name = at.Symbol
		}
		if molname == "" {
			molname = "UNK"
		}
		if chain == "" {
			chain = "A"
		}
		id := at.ID
		if id <= 0 {
			id = i + 1
		}
		c := coords.RawRowView(i)
		//4 chars names start one column earlier.
		format := "%-6s%5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
		if len(name) == 4 {
			format = "%-6s%5d %4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
		}
		fmt.Fprintf(w, format, first, id%100000, name, molname, chain[:1], at.MolID%10000, c[0], c[1], c[2], 1.0, 0.0, at.Symbol)
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return newCError("PDBFileWrite", "Failed to write: %s", err)
	}
	return nil
}
