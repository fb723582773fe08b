package config

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/moleview/moleview/chemplot"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Render holds the configuration of the view command
type Render struct {
	Bonds

	Output     string
	Format     string
	Frame      int
	Elev       float64
	Azim       float64
	Orient     string
	Width      float64
	Height     float64
	Radius     string
	AtomScale  float64
	NoBonds    bool
	Labels     bool
	NoTitle    bool
	NoAxis     bool
	NoGrid     bool
	NoLegend   bool
	ConfigFile string
	Colors     map[string]string
}

// Flags returns CLI flags for the view command
func (c *Render) Flags() []cli.Flag {
	def := chemplot.DefaultOptions()
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Image file to write (png, svg, pdf, eps, jpg, tif). Defaults to the input name with .png",
			Destination: &c.Output,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Format of the input file (xyz, pdb), when it can't be told from its extension",
			Destination: &c.Format,
		},
		&cli.IntFlag{
			Name:        "frame",
			Usage:       "Frame to draw, starting from 0",
			Destination: &c.Frame,
		},
		&cli.FloatFlag{
			Name:        "elev",
			Usage:       "Camera elevation, in degrees",
			Value:       def.Elev,
			Destination: &c.Elev,
		},
		&cli.FloatFlag{
			Name:        "azim",
			Usage:       "Camera azimuth, in degrees",
			Value:       def.Azim,
			Destination: &c.Azim,
		},
		&cli.StringFlag{
			Name:        "orient",
			Usage:       "Orientation of the molecule: camera (use elev and azim) or principal",
			Value:       def.Orient,
			Destination: &c.Orient,
		},
		&cli.FloatFlag{
			Name:        "width",
			Usage:       "Image width, in inches",
			Value:       def.Width,
			Destination: &c.Width,
		},
		&cli.FloatFlag{
			Name:        "height",
			Usage:       "Image height, in inches",
			Value:       def.Height,
			Destination: &c.Height,
		},
		&cli.StringFlag{
			Name:        "radius",
			Usage:       "Radius used to size the atoms: covalent, vdw (space filling) or atomic",
			Value:       def.Radius,
			Destination: &c.Radius,
		},
		&cli.FloatFlag{
			Name:        "atom-scale",
			Usage:       "Drawn atom radius, as a fraction of the --radius one. 0 means 0.5, or 1 for vdw",
			Destination: &c.AtomScale,
		},
	}
	flags = append(flags, c.Bonds.Flags()...)
	return append(flags, []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-bonds",
			Usage:       "Don't draw bonds",
			Destination: &c.NoBonds,
		},
		&cli.BoolFlag{
			Name:        "labels",
			Usage:       "Label atoms with their symbol and number",
			Destination: &c.Labels,
		},
		&cli.BoolFlag{
			Name:        "no-title",
			Usage:       "Don't draw the title",
			Destination: &c.NoTitle,
		},
		&cli.BoolFlag{
			Name:        "no-axis",
			Usage:       "Don't draw the axes",
			Destination: &c.NoAxis,
		},
		&cli.BoolFlag{
			Name:        "no-grid",
			Usage:       "Don't draw the grid",
			Destination: &c.NoGrid,
		},
		&cli.BoolFlag{
			Name:        "no-legend",
			Usage:       "Don't draw the element legend",
			Destination: &c.NoLegend,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with render settings. Flags given explicitly take precedence",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("MOLEVIEW_CONFIG"),
		},
	}...)
}

// ViewSection is the [view] table of a render configuration file
type ViewSection struct {
	Elev           *float64 `toml:"elev"`
	Azim           *float64 `toml:"azim"`
	Orient         *string  `toml:"orient"`
	Width          *float64 `toml:"width"`
	Height         *float64 `toml:"height"`
	Radius         *string  `toml:"radius"`
	AtomScale      *float64 `toml:"atom_scale"`
	BondMethod     *string  `toml:"bond_method"`
	BondTolerance  *float64 `toml:"bond_tolerance"`
	BondCutoff     *float64 `toml:"bond_cutoff"`
	HydrogenCutoff *float64 `toml:"hydrogen_cutoff"`
	Bonds          *bool    `toml:"bonds"`
	Labels         *bool    `toml:"labels"`
	Title          *bool    `toml:"title"`
	Axis           *bool    `toml:"axis"`
	Grid           *bool    `toml:"grid"`
	Legend         *bool    `toml:"legend"`
}

// File is the layout of a render configuration file
type File struct {
	View   ViewSection       `toml:"view"`
	Colors map[string]string `toml:"colors"`
}

// LoadFile reads a render configuration file. Unknown keys are an error.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config file", goerr.V("path", path))
	}
	defer f.Close()

	var cfg File
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &cfg, nil
}

// Merge applies the settings in file to c, except for those whose flag
// was given explicitly, as told by isSet.
func (c *Render) Merge(file *File, isSet func(name string) bool) {
	setFloat := func(flag string, dst *float64, v *float64) {
		if v != nil && !isSet(flag) {
			*dst = *v
		}
	}
	//"no-x" flags are the negation of the "x" keys in the file.
	setNegated := func(flag string, dst *bool, v *bool) {
		if v != nil && !isSet(flag) {
			*dst = !*v
		}
	}
	setString := func(flag string, dst *string, v *string) {
		if v != nil && !isSet(flag) {
			*dst = *v
		}
	}
	v := file.View
	setFloat("elev", &c.Elev, v.Elev)
	setFloat("azim", &c.Azim, v.Azim)
	setFloat("width", &c.Width, v.Width)
	setFloat("height", &c.Height, v.Height)
	setFloat("atom-scale", &c.AtomScale, v.AtomScale)
	setFloat("bond-tolerance", &c.BondTolerance, v.BondTolerance)
	setFloat("bond-cutoff", &c.BondCutoff, v.BondCutoff)
	setFloat("hydrogen-cutoff", &c.HydrogenCutoff, v.HydrogenCutoff)
	setString("orient", &c.Orient, v.Orient)
	setString("radius", &c.Radius, v.Radius)
	setString("bond-method", &c.BondMethod, v.BondMethod)
	if v.Labels != nil && !isSet("labels") {
		c.Labels = *v.Labels
	}
	setNegated("no-bonds", &c.NoBonds, v.Bonds)
	setNegated("no-title", &c.NoTitle, v.Title)
	setNegated("no-axis", &c.NoAxis, v.Axis)
	setNegated("no-grid", &c.NoGrid, v.Grid)
	setNegated("no-legend", &c.NoLegend, v.Legend)

	if len(file.Colors) > 0 && c.Colors == nil {
		c.Colors = make(map[string]string, len(file.Colors))
	}
	for k, col := range file.Colors {
		c.Colors[k] = col
	}
}

// Load reads the configuration file, if one was given, and merges it into c.
func (c *Render) Load(isSet func(name string) bool) error {
	if c.ConfigFile == "" {
		return nil
	}
	file, err := LoadFile(c.ConfigFile)
	if err != nil {
		return err
	}
	c.Merge(file, isSet)
	return nil
}

// ParseColor parses a color in "#rrggbb" or "rrggbb" form
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, goerr.New("invalid color, expected #rrggbb", goerr.V("color", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid color, expected #rrggbb", goerr.V("color", s))
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Options validates the configuration and returns the drawing options it describes
func (c *Render) Options() (chemplot.Options, error) {
	opts := chemplot.DefaultOptions()

	switch c.Orient {
	case "", chemplot.OrientCamera, chemplot.OrientPrincipal:
	default:
		return opts, goerr.New("invalid orientation, expected camera or principal", goerr.V("orient", c.Orient))
	}
	if c.Width <= 0 || c.Height <= 0 {
		return opts, goerr.New("image size must be positive", goerr.V("width", c.Width), goerr.V("height", c.Height))
	}
	switch c.Radius {
	case "", chemplot.RadiusCovalent, chemplot.RadiusVdw, chemplot.RadiusAtomic:
	default:
		return opts, goerr.New("invalid radius, expected covalent, vdw or atomic", goerr.V("radius", c.Radius))
	}
	if c.AtomScale < 0 {
		return opts, goerr.New("atom scale can't be negative", goerr.V("atom-scale", c.AtomScale))
	}
	if err := c.Bonds.Validate(); err != nil {
		return opts, err
	}
	if c.Frame < 0 {
		return opts, goerr.New("frame can't be negative", goerr.V("frame", c.Frame))
	}

	opts.Elev = c.Elev
	opts.Azim = c.Azim
	if c.Orient != "" {
		opts.Orient = c.Orient
	}
	opts.Width = c.Width
	opts.Height = c.Height
	if c.Radius != "" {
		opts.Radius = c.Radius
	}
	opts.AtomScale = c.AtomScale
	opts.NoBonds = c.NoBonds
	opts.Labels = c.Labels
	opts.ShowTitle = !c.NoTitle
	opts.ShowAxis = !c.NoAxis
	opts.ShowGrid = !c.NoGrid
	opts.ShowLegend = !c.NoLegend

	if len(c.Colors) > 0 {
		opts.Colors = make(map[string]color.Color, len(c.Colors))
	}
	for k, v := range c.Colors {
		symbol := chem.NormalizeSymbol(k)
		if !chem.KnownElement(symbol) {
			return opts, goerr.New("unknown element in colors", goerr.V("element", k))
		}
		col, err := ParseColor(v)
		if err != nil {
			return opts, goerr.Wrap(err, "invalid color for element", goerr.V("element", k))
		}
		opts.Colors[symbol] = col
	}

	return opts, nil
}
