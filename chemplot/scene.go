/*
 * scene.go, part of moleview.
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

package chemplot

import (
	"image/color"
	"math"
	"sort"
	"strconv"

	chem "github.com/moleview/moleview"
	v3 "github.com/moleview/moleview/v3"
)

//Orientations for the camera.
const (
	OrientCamera    = "camera"    //use the elevation and azimuth angles
	OrientPrincipal = "principal" //align the principal axes of the molecule with the screen
)

//Radii used to size the atoms.
const (
	RadiusCovalent = "covalent" //ball and stick
	RadiusVdw      = "vdw"      //space filling
	RadiusAtomic   = "atomic"
)

//fallbackRadius is used for elements without the requested radius.
const fallbackRadius = 0.75

//Default camera, the same one used by most 3D plotting programs.
const (
	DefaultElev = 30.0
	DefaultAzim = -60.0
)

//Options controls how a molecule is drawn.
type Options struct {
	Elev, Azim float64 //camera angles, in degrees.
	Orient     string  //OrientCamera (or empty) or OrientPrincipal
	Title      string  //if empty, the formula of the molecule is used.
	ShowTitle  bool
	ShowAxis   bool
	ShowGrid   bool
	ShowLegend bool
	Labels     bool //label each atom with its symbol and number
	NoBonds    bool
	Radius     string  //RadiusCovalent (or empty), RadiusVdw or RadiusAtomic
	AtomScale  float64 //factor applied to the radius to get the drawn one. 0 means the default for Radius.
	Width      float64 //inches
	Height     float64 //inches
	Colors     map[string]color.Color //overrides the CPK colors for the given symbols.
}

//DefaultOptions returns the options used when nothing else is requested:
//the usual camera, title, axes, grid and legend shown.
func DefaultOptions() Options {
	return Options{
		Elev:       DefaultElev,
		Azim:       DefaultAzim,
		Orient:     OrientCamera,
		ShowTitle:  true,
		ShowAxis:   true,
		ShowGrid:   true,
		ShowLegend: true,
		Radius:     RadiusCovalent,
		Width:      6,
		Height:     6,
	}
}

//SceneAtom is an atom projected on the screen.
type SceneAtom struct {
	Index  int
	Symbol string
	Label  string
	X, Y   float64 //screen coordinates, A
	Depth  float64 //larger values are closer to the viewer
	Radius float64 //drawn radius, A
	Color  color.Color
}

//SceneBond is one half of a bond, going from the center of atom From
//to the middle of the bond, drawn in the color of From.
type SceneBond struct {
	From, To int
	X, Y     [2]float64
	Depth    float64
	Color    color.Color
}

//Scene is a molecule prepared for drawing: every atom and half-bond
//projected on the screen, in painter's order.
type Scene struct {
	Atoms    []SceneAtom //in the same order as in the molecule
	Bonds    []SceneBond
	Elements []string //symbols present, in order of first appearance
	Title    string
	opts     Options
}

//colorOf returns the color for symbol, from the overrides, if any, or the CPK table.
func (O Options) colorOf(symbol string) color.Color {
	if c, ok := O.Colors[symbol]; ok && c != nil {
		return c
	}
	r, g, b := chem.Color(symbol)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

//DefaultAtomScale returns the scale used for the given kind of radius
//when none is requested: half the radius for ball and stick drawings,
//the whole radius for space filling ones.
func DefaultAtomScale(radius string) float64 {
	if radius == RadiusVdw {
		return 1
	}
	return 0.5
}

//radiusOf returns the radius of the requested kind for at.
func radiusOf(at *chem.Atom, kind string) float64 {
	var r float64
	switch kind {
	case RadiusVdw:
		r = at.Vdw
		if r <= 0 {
			r = chem.Vdwrad(at.Symbol)
		}
	case RadiusAtomic:
		r = chem.AtomicRadius(at.Symbol)
	default:
		r = at.Covrad
		if r <= 0 {
			r = chem.Covrad(at.Symbol)
		}
	}
	if r <= 0 {
		return fallbackRadius
	}
	return r
}

//cameraMatrix returns the rotation that takes cartesian coordinates to the
//screen frame. Its rows are the screen x axis, the screen y axis and the
//direction towards the viewer.
func cameraMatrix(elev, azim float64) *v3.Matrix {
	e, a := chem.Deg2Rad(elev), chem.Deg2Rad(azim)
	se, ce := math.Sincos(e)
	sa, ca := math.Sincos(a)
	R, _ := v3.NewMatrix([]float64{
		-sa, ca, 0,
		-se * ca, -se * sa, ce,
		ce * ca, ce * sa, se,
	})
	return R
}

//principalMatrix returns the rotation that puts the axis of largest spread of
//coords along the screen x axis, and the one of smallest spread along the
//line of sight.
func principalMatrix(coords *v3.Matrix, masses []float64) (*v3.Matrix, error) {
	axes, _, err := chem.PrincipalAxes(coords, masses)
	if err != nil {
		return nil, err
	}
	//axes are right handed, so (a2, a1, -a0) is too.
	R := v3.Zeros(3)
	R.SetRow(0, axes.RawRowView(2))
	R.SetRow(1, axes.RawRowView(1))
	R.VecView(2).Scale(-1, axes.VecView(0))
	return R, nil
}

//NewScene projects the coordinates coords of mol on the screen, according to opts.
//Bonds are taken from the atoms of mol, so they should be assigned beforehand.
func NewScene(mol chem.Atomer, coords *v3.Matrix, opts Options) (*Scene, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, newError("NewScene", "Nothing to draw: the molecule has no atoms")
	}
	if coords == nil || coords.NVecs() != mol.Len() {
		return nil, newError("NewScene", "The molecule has %d atoms but the coordinates don't match", mol.Len())
	}
	switch opts.Radius {
	case "", RadiusCovalent, RadiusVdw, RadiusAtomic:
	default:
		return nil, newError("NewScene", "Unknown kind of radius %q", opts.Radius)
	}
	if opts.AtomScale <= 0 {
		opts.AtomScale = DefaultAtomScale(opts.Radius)
	}
	var R *v3.Matrix
	var err error
	switch opts.Orient {
	case "", OrientCamera:
		R = cameraMatrix(opts.Elev, opts.Azim)
	case OrientPrincipal:
		//unit masses, so the orientation follows the shape.
		R, err = principalMatrix(coords, nil)
		if err != nil {
			return nil, errDecorate(err, "NewScene")
		}
	default:
		return nil, newError("NewScene", "Unknown orientation %q", opts.Orient)
	}
	n := mol.Len()
	centered := v3.Zeros(n)
	centered.SubVec(coords, chem.Centroid(coords))
	proj := v3.Zeros(n)
	proj.Mul(centered, R.T())
	S := &Scene{Atoms: make([]SceneAtom, n), opts: opts}
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		S.Atoms[i] = SceneAtom{
			Index:  i,
			Symbol: at.Symbol,
			Label:  atomLabel(at, i),
			X:      proj.At(i, 0),
			Y:      proj.At(i, 1),
			Depth:  proj.At(i, 2),
			Radius: radiusOf(at, opts.Radius) * opts.AtomScale,
			Color:  opts.colorOf(at.Symbol),
		}
	}
	S.Elements = chem.Elements(mol)
	S.Title = opts.Title
	if S.Title == "" {
		S.Title = chem.Formula(mol)
	}
	if !opts.NoBonds {
		for _, b := range chem.Bonds(mol) {
			S.addBond(b.At1.Index(), b.At2.Index())
		}
	}
	return S, nil
}

func atomLabel(at *chem.Atom, i int) string {
	return at.Symbol + strconv.Itoa(i+1)
}

//addBond adds the two halves of the bond between atoms i and j.
//Each half starts at the surface of its atom and ends in the middle
//of the bond.
func (S *Scene) addBond(i, j int) {
	a, b := S.Atoms[i], S.Atoms[j]
	mx, my, md := (a.X+b.X)/2, (a.Y+b.Y)/2, (a.Depth+b.Depth)/2
	for _, v := range [2]SceneAtom{a, b} {
		dx, dy := mx-v.X, my-v.Y
		l := math.Hypot(dx, dy)
		if l <= v.Radius {
			//the bond points (almost) to the viewer: its half is hidden by the atom.
			continue
		}
		sx, sy := v.X+dx*v.Radius/l, v.Y+dy*v.Radius/l
		other := j
		if v.Index == j {
			other = i
		}
		S.Bonds = append(S.Bonds, SceneBond{
			From:  v.Index,
			To:    other,
			X:     [2]float64{sx, mx},
			Y:     [2]float64{sy, my},
			Depth: (v.Depth + md) / 2,
			Color: v.Color,
		})
	}
}

//drawItem is an atom or half-bond, to be drawn in order of depth.
type drawItem struct {
	depth float64
	atom  int //-1 for bonds
	bond  int
}

//order returns the atoms and half-bonds sorted from the farthest
//to the closest to the viewer.
func (S *Scene) order() []drawItem {
	items := make([]drawItem, 0, len(S.Atoms)+len(S.Bonds))
	for i, v := range S.Atoms {
		items = append(items, drawItem{depth: v.Depth, atom: i, bond: -1})
	}
	for i, v := range S.Bonds {
		items = append(items, drawItem{depth: v.Depth, atom: -1, bond: i})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth < items[j].depth })
	return items
}

//Limits returns the ranges of the screen coordinates to be shown. They
//contain every atom with a margin, and have the same scale on both axes
//when drawn on an area of the given width and height, in any unit.
func (S *Scene) Limits(width, height float64) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, v := range S.Atoms {
		xmin = math.Min(xmin, v.X-v.Radius)
		xmax = math.Max(xmax, v.X+v.Radius)
		ymin = math.Min(ymin, v.Y-v.Radius)
		ymax = math.Max(ymax, v.Y+v.Radius)
	}
	const margin = 0.5
	xmin, xmax, ymin, ymax = xmin-margin, xmax+margin, ymin-margin, ymax+margin
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	//A per inch needed in each direction; the larger wins.
	scale := math.Max((xmax-xmin)/width, (ymax-ymin)/height)
	xc, yc := (xmin+xmax)/2, (ymin+ymax)/2
	return xc - scale*width/2, xc + scale*width/2, yc - scale*height/2, yc + scale*height/2
}
