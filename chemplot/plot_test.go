/*
 * plot_test.go, part of moleview.
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
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/moleview/moleview"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func readBonded(Te *testing.T, name string) *chem.Molecule {
	mol, err := chem.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if err := chem.AssignBonds(mol.Coords[0], mol, -1); err != nil {
		Te.Fatal(err)
	}
	return mol
}

//TestTopView looks at benzene from above, so the screen coordinates
//must be the cartesian x and y.
func TestTopView(Te *testing.T) {
	mol := readBonded(Te, "../test/benzene.xyz")
	opts := DefaultOptions()
	opts.Elev, opts.Azim = 90, -90
	S, err := NewScene(mol, mol.Coords[0], opts)
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range S.Atoms {
		x, y := mol.Coords[0].At(i, 0), mol.Coords[0].At(i, 1)
		if math.Abs(v.X-x) > 1e-9 || math.Abs(v.Y-y) > 1e-9 || math.Abs(v.Depth) > 1e-9 {
			Te.Errorf("Atom %d projected to %v %v %v, expected %v %v 0", i, v.X, v.Y, v.Depth, x, y)
		}
	}
	if len(S.Bonds) != 24 {
		Te.Errorf("Expected 24 half-bonds, got %d", len(S.Bonds))
	}
	if S.Title != "C6H6" {
		Te.Errorf("The default title should be the formula, got %s", S.Title)
	}
	if S.Atoms[6].Label != "H7" {
		Te.Errorf("Wrong label %s", S.Atoms[6].Label)
	}
}

func TestPrincipalView(Te *testing.T) {
	mol := readBonded(Te, "../test/benzene.xyz")
	//tilt the molecule so it is not on the XY plane anymore.
	tilted := mol.Coords[0].Clone()
	for i := 0; i < tilted.NVecs(); i++ {
		x, z := tilted.At(i, 0), tilted.At(i, 2)
		tilted.Set(i, 0, x*math.Cos(0.7)-z*math.Sin(0.7))
		tilted.Set(i, 2, x*math.Sin(0.7)+z*math.Cos(0.7))
	}
	opts := DefaultOptions()
	opts.Orient = OrientPrincipal
	S, err := NewScene(mol, tilted, opts)
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range S.Atoms {
		if math.Abs(v.Depth) > 1e-6 {
			Te.Errorf("A flat molecule seen along its principal axis should have no depth, atom %d has %v", i, v.Depth)
		}
		r := math.Hypot(v.X, v.Y)
		exp := 1.39
		if v.Symbol == "H" {
			exp = 2.47
		}
		if math.Abs(r-exp) > 1e-5 {
			Te.Errorf("Atom %d should be %v A away from the center, is %v", i, exp, r)
		}
	}
	opts.Orient = "sideways"
	if _, err := NewScene(mol, tilted, opts); err == nil {
		Te.Error("Unknown orientations should give an error")
	}
}

func TestPainterOrder(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	S, err := NewScene(mol, mol.Coords[0], DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	items := S.order()
	if len(items) != len(S.Atoms)+len(S.Bonds) {
		Te.Fatalf("%d items to draw for %d atoms and %d half-bonds", len(items), len(S.Atoms), len(S.Bonds))
	}
	for i := 1; i < len(items); i++ {
		if items[i].depth < items[i-1].depth {
			Te.Fatalf("Item %d is drawn after a closer one", i)
		}
	}
	for _, b := range S.Bonds {
		if b.Color != S.Atoms[b.From].Color {
			Te.Errorf("Half-bond from atom %d should have its color", b.From)
		}
	}
}

func TestOptions(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	opts := DefaultOptions()
	opts.NoBonds = true
	opts.Colors = map[string]color.Color{"O": color.RGBA{B: 255, A: 255}}
	opts.Width, opts.Height = 8, 4
	S, err := NewScene(mol, mol.Coords[0], opts)
	if err != nil {
		Te.Fatal(err)
	}
	if len(S.Bonds) != 0 {
		Te.Errorf("No bonds should be drawn, got %d", len(S.Bonds))
	}
	if S.Atoms[2].Color != (color.RGBA{B: 255, A: 255}) {
		Te.Errorf("Color override not applied: %v", S.Atoms[2].Color)
	}
	if S.Atoms[0].Color != (color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 255}) {
		Te.Errorf("Carbon should keep its CPK color: %v", S.Atoms[0].Color)
	}
	xmin, xmax, ymin, ymax := S.Limits(8, 4)
	if math.Abs((xmax-xmin)/8-(ymax-ymin)/4) > 1e-9 {
		Te.Errorf("Axes don't have the same scale: %v %v %v %v", xmin, xmax, ymin, ymax)
	}
	for _, v := range S.Atoms {
		if v.X-v.Radius < xmin || v.X+v.Radius > xmax || v.Y-v.Radius < ymin || v.Y+v.Radius > ymax {
			Te.Errorf("Atom %d is outside the limits", v.Index)
		}
	}
}

//TestDataAspect checks that an Angstrom takes the same number of points in
//both directions of the area where the molecule is drawn.
func TestDataAspect(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	sizes := [][2]float64{{6, 6}, {8, 4}, {3, 7}}
	for _, size := range sizes {
		opts := DefaultOptions()
		opts.Width, opts.Height = size[0], size[1]
		S, err := NewScene(mol, mol.Coords[0], opts)
		if err != nil {
			Te.Fatal(err)
		}
		p, err := S.Plot()
		if err != nil {
			Te.Fatal(err)
		}
		c := draw.New(vgimg.New(vg.Length(size[0])*vg.Inch, vg.Length(size[1])*vg.Inch))
		area := p.DataCanvas(c).Rectangle.Size()
		xscale := float64(area.X) / (p.X.Max - p.X.Min)
		yscale := float64(area.Y) / (p.Y.Max - p.Y.Min)
		if math.Abs(xscale/yscale-1) > 1e-3 {
			Te.Errorf("%vx%v in: %.2f pt/A in x but %.2f pt/A in y", size[0], size[1], xscale, yscale)
		}
		for _, v := range S.Atoms {
			if v.X-v.Radius < p.X.Min || v.X+v.Radius > p.X.Max || v.Y-v.Radius < p.Y.Min || v.Y+v.Radius > p.Y.Max {
				Te.Errorf("%vx%v in: atom %d is outside the plot", size[0], size[1], v.Index)
			}
		}
	}
}

func TestRadius(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	radii := map[string]float64{
		RadiusCovalent: 0.76 * 0.5,
		RadiusVdw:      1.70,
		RadiusAtomic:   0.68 * 0.5,
	}
	for kind, exp := range radii {
		opts := DefaultOptions()
		opts.Radius = kind
		S, err := NewScene(mol, mol.Coords[0], opts)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(S.Atoms[0].Radius-exp) > 1e-9 {
			Te.Errorf("%s: carbon drawn with radius %v, expected %v", kind, S.Atoms[0].Radius, exp)
		}
	}
	opts := DefaultOptions()
	opts.Radius, opts.AtomScale = RadiusVdw, 0.25
	S, err := NewScene(mol, mol.Coords[0], opts)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(S.Atoms[2].Radius-1.52*0.25) > 1e-9 {
		Te.Errorf("Oxygen drawn with radius %v", S.Atoms[2].Radius)
	}
	opts.Radius = "huge"
	if _, err := NewScene(mol, mol.Coords[0], opts); err == nil {
		Te.Error("Unknown kinds of radius should give an error")
	}
	odd, err := chem.XYZFileRead(strings.NewReader("1\n\nQq 0 0 0\n"))
	if err != nil {
		Te.Fatal(err)
	}
	S, err = NewScene(odd, odd.Coords[0], DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(S.Atoms[0].Radius-fallbackRadius*0.5) > 1e-9 {
		Te.Errorf("Unknown elements should get the fallback radius, got %v", S.Atoms[0].Radius)
	}
}

//TestOutlines checks that light atoms, such as hydrogens, still show on
//the white background: their sticks and legend entries get a dark edge.
func TestOutlines(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	S, err := NewScene(mol, mol.Coords[0], DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	found := false
	for i, b := range S.Bonds {
		if S.Atoms[b.From].Symbol != "H" {
			continue
		}
		found = true
		pls, err := S.bondPlotters(i)
		if err != nil {
			Te.Fatal(err)
		}
		if len(pls) != 2 {
			Te.Fatalf("Expected an outline and a stick, got %d plotters", len(pls))
		}
		edge, stick := pls[0].(*plotter.Line), pls[1].(*plotter.Line)
		if edge.LineStyle.Width <= stick.LineStyle.Width {
			Te.Error("The outline should be wider than the stick")
		}
		if edge.LineStyle.Color == color.Color(white) || stick.LineStyle.Color != color.Color(white) {
			Te.Errorf("Wrong colors for a hydrogen half-bond: %v %v", edge.LineStyle.Color, stick.LineStyle.Color)
		}
	}
	if !found {
		Te.Fatal("No half-bonds from hydrogens")
	}
	th, err := S.legendThumbs("H")
	if err != nil {
		Te.Fatal(err)
	}
	if len(th) != 2 {
		Te.Fatalf("Expected a filled circle and a ring, got %d thumbnails", len(th))
	}
	ring := th[1].(*plotter.Scatter)
	if _, ok := ring.GlyphStyle.Shape.(draw.RingGlyph); !ok || ring.GlyphStyle.Color == color.Color(white) {
		Te.Errorf("The hydrogen legend entry has no visible ring: %+v", ring.GlyphStyle)
	}
}

func TestRender(Te *testing.T) {
	mol := readBonded(Te, "../test/ethanol.xyz")
	opts := DefaultOptions()
	opts.Labels = true
	S, err := NewScene(mol, mol.Coords[0], opts)
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := S.Render(&buf, "png"); err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		Te.Error("The output is not a PNG image")
	}
	buf.Reset()
	if err := S.Render(&buf, "SVG"); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		Te.Error("The output is not an SVG image")
	}
	if err := S.Render(&buf, "bmp"); err == nil {
		Te.Error("Unknown formats should give an error")
	}
	opts.ShowAxis, opts.ShowTitle, opts.ShowLegend, opts.ShowGrid = false, false, false, false
	S2, err := NewScene(mol, mol.Coords[0], opts)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "ethanol.pdf")
	if err := S2.Save(name); err != nil {
		Te.Fatal(err)
	}
	if info, err := os.Stat(name); err != nil || info.Size() == 0 {
		Te.Errorf("Nothing written to %s", name)
	}
	if err := S2.Save(filepath.Join(Te.TempDir(), "ethanol.mol")); err == nil {
		Te.Error("Unknown extensions should give an error")
	}
}

func TestEmptyScene(Te *testing.T) {
	top, _ := chem.NewTopology([]*chem.Atom{})
	if _, err := NewScene(top, nil, DefaultOptions()); err == nil {
		Te.Error("An empty molecule can't be drawn")
	}
}
