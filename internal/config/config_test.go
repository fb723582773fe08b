package config_test

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/moleview/moleview/chemplot"
	"github.com/moleview/moleview/internal/config"
)

func defaultRender() config.Render {
	def := chemplot.DefaultOptions()
	return config.Render{
		Bonds:  config.DefaultBonds(),
		Elev:   def.Elev,
		Azim:   def.Azim,
		Orient: def.Orient,
		Width:  def.Width,
		Height: def.Height,
		Radius: def.Radius,
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moleview.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.Logger{Level: "debug", JSON: true}
		logger, err := cfg.Configure(&buf)
		gt.NoError(t, err)
		logger.Debug("hello", "atoms", 12)
		gt.String(t, buf.String()).Contains(`"msg":"hello"`)
		gt.String(t, buf.String()).Contains(`"atoms":12`)
	})

	t.Run("level filters messages", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.Logger{Level: "warn", JSON: true}
		logger, err := cfg.Configure(&buf)
		gt.NoError(t, err)
		logger.Info("ignored")
		gt.Equal(t, buf.Len(), 0)
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.Logger{Level: "info"}
		logger, err := cfg.Configure(&buf)
		gt.NoError(t, err)
		logger.Info("drawing molecule")
		gt.String(t, buf.String()).Contains("drawing molecule")
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.Logger{Level: "loud"}
		_, err := cfg.Configure(&bytes.Buffer{})
		gt.Error(t, err)
	})
}

func TestRenderMerge(t *testing.T) {
	path := writeConfig(t, `
[view]
elev = 10.0
azim = 45.0
orient = "principal"
labels = true
grid = false
bond_tolerance = 0.3
radius = "vdw"
bond_method = "cutoff"
hydrogen_cutoff = 1.1

[colors]
C = "#202020"
o = "ff0000"
`)

	t.Run("file values are used", func(t *testing.T) {
		r := defaultRender()
		r.ConfigFile = path
		gt.NoError(t, r.Load(func(string) bool { return false }))
		gt.Equal(t, r.Elev, 10.0)
		gt.Equal(t, r.Azim, 45.0)
		gt.Equal(t, r.Orient, "principal")
		gt.Equal(t, r.Labels, true)
		gt.Equal(t, r.NoGrid, true)
		gt.Equal(t, r.NoAxis, false)
		gt.Equal(t, r.BondTolerance, 0.3)
		gt.Equal(t, r.BondMethod, "cutoff")
		gt.Equal(t, r.HydrogenCutoff, 1.1)
		gt.Equal(t, r.BondCutoff, 2.0)

		opts, err := r.Options()
		gt.NoError(t, err)
		gt.Equal(t, opts.Orient, chemplot.OrientPrincipal)
		gt.Equal(t, opts.ShowGrid, false)
		gt.Equal(t, opts.ShowAxis, true)
		gt.Equal(t, opts.Radius, chemplot.RadiusVdw)
		gt.V(t, opts.Colors["O"]).Equal(color.Color(color.RGBA{R: 255, A: 255}))
		gt.V(t, opts.Colors["C"]).Equal(color.Color(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 255}))
	})

	t.Run("explicit flags win", func(t *testing.T) {
		r := defaultRender()
		r.ConfigFile = path
		r.Elev = 80
		r.BondMethod = "covalent"
		isSet := func(name string) bool { return name == "elev" || name == "bond-method" }
		gt.NoError(t, r.Load(isSet))
		gt.Equal(t, r.Elev, 80.0)
		gt.Equal(t, r.Azim, 45.0)
		gt.Equal(t, r.BondMethod, "covalent")
	})

	t.Run("no config file", func(t *testing.T) {
		r := defaultRender()
		gt.NoError(t, r.Load(func(string) bool { return false }))
		gt.Equal(t, r.Elev, 30.0)
	})
}

func TestLoadFileErrors(t *testing.T) {
	testCases := map[string]struct {
		body string
		want string
	}{
		"unknown key": {
			body: "[view]\nzoom = 2\n",
			want: "failed to parse config file",
		},
		"syntax error": {
			body: "[view\n",
			want: "failed to parse config file",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadFile(writeConfig(t, tc.body))
			gt.Error(t, err)
			gt.String(t, err.Error()).Contains(tc.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "nothere.toml"))
		gt.Error(t, err)
	})
}

func TestRenderOptionsValidation(t *testing.T) {
	testCases := map[string]func(r *config.Render){
		"bad orientation":    func(r *config.Render) { r.Orient = "upside-down" },
		"zero width":         func(r *config.Render) { r.Width = 0 },
		"bad radius":         func(r *config.Render) { r.Radius = "ionic" },
		"negative scale":     func(r *config.Render) { r.AtomScale = -1 },
		"negative tolerance": func(r *config.Render) { r.BondTolerance = -0.1 },
		"bad bond method":    func(r *config.Render) { r.BondMethod = "guess" },
		"zero cutoff":        func(r *config.Render) { r.BondCutoff = 0 },
		"negative frame":     func(r *config.Render) { r.Frame = -2 },
		"unknown element":    func(r *config.Render) { r.Colors = map[string]string{"Qq": "#ffffff"} },
		"bad color":          func(r *config.Render) { r.Colors = map[string]string{"C": "grey"} },
	}
	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			r := defaultRender()
			mutate(&r)
			_, err := r.Options()
			gt.Error(t, err)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		r := defaultRender()
		opts, err := r.Options()
		gt.NoError(t, err)
		gt.Equal(t, opts.ShowTitle, true)
		gt.Equal(t, opts.ShowLegend, true)
		gt.Equal(t, opts.Elev, 30.0)
		gt.Equal(t, opts.Azim, -60.0)
		gt.Equal(t, opts.Radius, chemplot.RadiusCovalent)
		gt.Equal(t, opts.AtomScale, 0.0)
	})
}

func TestParseColor(t *testing.T) {
	c, err := config.ParseColor("#0000FF")
	gt.NoError(t, err)
	gt.V(t, c).Equal(color.Color(color.RGBA{B: 255, A: 255}))

	_, err = config.ParseColor("#00f")
	gt.Error(t, err)
}
