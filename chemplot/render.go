/*
 * render.go, part of moleview.
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
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//Formats lists the output formats that Render understands.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

//circleSides is the number of sides of the polygons used to draw atoms.
const circleSides = 48

//bondWidth is the width of the bond sticks, edgeWidth that of their outline
//and of the atom outlines.
var (
	bondWidth = vg.Points(3)
	edgeWidth = vg.Points(0.5)
)

//edgeShade darkens the color of an atom to get the color of its outline.
const edgeShade = 0.5

//limitPasses is the largest number of times the limits are fitted to the
//data area, which shrinks or grows with the tick labels.
const limitPasses = 4

func disc(x, y, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSides)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / circleSides)
		pts[i].X = x + r*c
		pts[i].Y = y + r*s
	}
	return pts
}

//darker returns c with each component scaled by f.
func darker(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * f),
		G: uint8(float64(g>>8) * f),
		B: uint8(float64(b>>8) * f),
		A: uint8(a >> 8),
	}
}

func (S *Scene) atomPlotter(i int) (plot.Plotter, error) {
	at := S.Atoms[i]
	p, err := plotter.NewPolygon(disc(at.X, at.Y, at.Radius))
	if err != nil {
		return nil, err
	}
	p.Color = at.Color
	p.LineStyle.Color = darker(at.Color, edgeShade)
	p.LineStyle.Width = edgeWidth
	return p, nil
}

//bondPlotters returns the plotters for the half-bond i: a dark outline
//and, on top of it, the stick in the color of its atom, so light colored
//sticks can be seen on the white background.
func (S *Scene) bondPlotters(i int) ([]plot.Plotter, error) {
	b := S.Bonds[i]
	xys := plotter.XYs{{X: b.X[0], Y: b.Y[0]}, {X: b.X[1], Y: b.Y[1]}}
	edge, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	edge.LineStyle.Color = darker(b.Color, edgeShade)
	edge.LineStyle.Width = bondWidth + 2*edgeWidth
	stick, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	stick.LineStyle.Color = b.Color
	stick.LineStyle.Width = bondWidth
	return []plot.Plotter{edge, stick}, nil
}

//legendThumbs returns the thumbnails for symbol in the legend: a circle
//of its color with a darker ring around it, as the atoms are drawn.
func (S *Scene) legendThumbs(symbol string) ([]plot.Thumbnailer, error) {
	col := S.opts.colorOf(symbol)
	fill, err := plotter.NewScatter(plotter.XYs{{}})
	if err != nil {
		return nil, err
	}
	fill.GlyphStyle = draw.GlyphStyle{Color: col, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	ring, err := plotter.NewScatter(plotter.XYs{{}})
	if err != nil {
		return nil, err
	}
	ring.GlyphStyle = draw.GlyphStyle{Color: darker(col, edgeShade), Radius: vg.Points(4), Shape: draw.RingGlyph{}}
	return []plot.Thumbnailer{fill, ring}, nil
}

//Plot builds a gonum plot of the scene. Atoms and bonds are
//added back to front, so closer ones hide the ones behind.
func (S *Scene) Plot() (*plot.Plot, error) {
	p := plot.New()
	if S.opts.ShowTitle {
		p.Title.Text = S.Title
		p.Title.Padding = 3 * vg.Millimeter
	}
	if S.opts.ShowAxis {
		p.X.Label.Text = "x (Å)"
		p.Y.Label.Text = "y (Å)"
	} else {
		p.HideAxes()
	}
	if S.opts.ShowGrid && S.opts.ShowAxis {
		p.Add(plotter.NewGrid())
	}
	for _, v := range S.order() {
		if v.atom >= 0 {
			pl, err := S.atomPlotter(v.atom)
			if err != nil {
				return nil, errDecorate(err, "Scene.Plot")
			}
			p.Add(pl)
			continue
		}
		pls, err := S.bondPlotters(v.bond)
		if err != nil {
			return nil, errDecorate(err, "Scene.Plot")
		}
		p.Add(pls...)
	}
	if S.opts.Labels {
		xyl := plotter.XYLabels{XYs: make(plotter.XYs, len(S.Atoms)), Labels: make([]string, len(S.Atoms))}
		for i, v := range S.Atoms {
			xyl.XYs[i].X, xyl.XYs[i].Y = v.X, v.Y
			xyl.Labels[i] = v.Label
		}
		labels, err := plotter.NewLabels(xyl)
		if err != nil {
			return nil, errDecorate(err, "Scene.Plot")
		}
		p.Add(labels)
	}
	if S.opts.ShowLegend {
		p.Legend.Top = true
		for _, el := range S.Elements {
			th, err := S.legendThumbs(el)
			if err != nil {
				return nil, errDecorate(err, "Scene.Plot")
			}
			p.Legend.Add(el, th...)
		}
	}
	//The limits have to be set after all the plotters are added.
	S.fitLimits(p)
	return p, nil
}

//fitLimits sets the axis ranges of p so both axes have the same scale on
//the area where the data is drawn, which is the canvas minus the title,
//axes and tick labels. As the tick labels depend on the ranges, the fit
//is repeated until the area doesn't change.
func (S *Scene) fitLimits(p *plot.Plot) {
	w, h := S.size()
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = S.Limits(w, h)
	c := draw.New(vgimg.New(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch))
	for i := 0; i < limitPasses; i++ {
		area := p.DataCanvas(c).Rectangle.Size()
		if area.X <= 0 || area.Y <= 0 {
			return
		}
		xmin, xmax, ymin, ymax := S.Limits(float64(area.X), float64(area.Y))
		if xmin == p.X.Min && xmax == p.X.Max && ymin == p.Y.Min && ymax == p.Y.Max {
			return
		}
		p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = xmin, xmax, ymin, ymax
	}
}

//size returns the canvas size, in inches.
func (S *Scene) size() (float64, float64) {
	w, h := S.opts.Width, S.opts.Height
	def := DefaultOptions()
	if w <= 0 {
		w = def.Width
	}
	if h <= 0 {
		h = def.Height
	}
	return w, h
}

//FormatOf returns the image format for filename, taken from its extension.
func FormatOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func knownFormat(format string) bool {
	for _, v := range Formats {
		if v == format {
			return true
		}
	}
	return false
}

//Render draws the scene to w, as an image in the given format
//(one of Formats).
func (S *Scene) Render(w io.Writer, format string) error {
	format = strings.ToLower(format)
	if !knownFormat(format) {
		return newError("Scene.Render", "Unknown image format %q", format)
	}
	p, err := S.Plot()
	if err != nil {
		return errDecorate(err, "Scene.Render")
	}
	width, height := S.size()
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return errDecorate(err, "Scene.Render")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errDecorate(err, "Scene.Render")
	}
	return nil
}

//Save renders the scene to the file filename. The format is
//given by the extension of the name.
func (S *Scene) Save(filename string) (err error) {
	format := FormatOf(filename)
	if !knownFormat(format) {
		return newError("Scene.Save", "Can't tell the image format of %s", filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return errDecorate(err, "Scene.Save")
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = errDecorate(e, "Scene.Save")
		}
	}()
	return errDecorate(S.Render(f, format), "Scene.Save")
}
