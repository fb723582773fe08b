package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/moleview/moleview/chemgraph"
	"github.com/moleview/moleview/internal/config"
	v3 "github.com/moleview/moleview/v3"
	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/floats"
)

// Summary describes one frame of a structure file
type Summary struct {
	File      string         `json:"file"`
	Atoms     int            `json:"atoms"`
	Frames    int            `json:"frames"`
	Frame     int            `json:"frame"`
	Comment   string         `json:"comment"`
	Formula   string         `json:"formula"`
	Mass      float64        `json:"mass"`
	Elements  map[string]int `json:"elements"`
	Bonds     int            `json:"bonds"`
	Fragments [][]int        `json:"fragments"`
	Rings     int            `json:"rings"`
	Centroid  [3]float64     `json:"centroid"`
	BoxMin    [3]float64     `json:"box_min"`
	BoxMax    [3]float64     `json:"box_max"`

	// FragmentCentroids has the centroid of each fragment, in the order
	// of Fragments
	FragmentCentroids [][3]float64 `json:"fragment_centroids"`
}

type infoConfig struct {
	config.Bonds

	JSON   bool
	Format string
	Frame  int
}

func (c *infoConfig) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the summary as JSON",
			Destination: &c.JSON,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Format of the input file (xyz, pdb), when it can't be told from its extension",
			Destination: &c.Format,
		},
		&cli.IntFlag{
			Name:        "frame",
			Usage:       "Frame to describe, starting from 0",
			Destination: &c.Frame,
		},
	}
	return append(flags, c.Bonds.Flags()...)
}

func cmdInfo(stdout io.Writer) *cli.Command {
	var cfg infoConfig

	return &cli.Command{
		Name:      "info",
		Aliases:   []string{"i"},
		Usage:     "Print a summary of a structure file",
		ArgsUsage: "<structure file>",
		Flags:     cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path, err := inputPath(c)
			if err != nil {
				return err
			}
			mol, err := readStructure(path, cfg.Format)
			if err != nil {
				return err
			}
			summary, err := summarize(path, mol, cfg.Frame, cfg.Bonds)
			if err != nil {
				return err
			}
			if cfg.JSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(summary); err != nil {
					return goerr.Wrap(err, "failed to encode summary")
				}
				return nil
			}
			printSummary(stdout, summary)
			return nil
		},
	}
}

// summarize collects the data shown by the info command for frame of mol.
// Problems with the bonds or masses are logged, not returned.
func summarize(path string, mol *chem.Molecule, frame int, bonds config.Bonds) (*Summary, error) {
	logger := slog.Default()
	coords, err := selectFrame(mol, frame)
	if err != nil {
		return nil, err
	}
	if err := bonds.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid bond options")
	}

	s := &Summary{
		File:     path,
		Atoms:    mol.Len(),
		Frames:   mol.NFrames(),
		Frame:    frame,
		Comment:  mol.Comment(frame),
		Formula:  chem.Formula(mol),
		Elements: chem.ElementCount(mol),
	}
	if masses, err := mol.Masses(); err != nil {
		logger.Warn("total mass not available", slog.Any("error", err))
	} else {
		s.Mass = floats.Sum(masses)
	}
	if err := inferBonds(mol, coords, bonds); err != nil {
		logger.Warn("failed to assign bonds", slog.Any("error", err))
	}
	top := chemgraph.TopologyFromChem(mol)
	s.Bonds = top.NBonds()
	s.Fragments = top.Fragments()
	s.Rings = top.Rings()

	c := chem.Centroid(coords)
	copy(s.Centroid[:], c.RawRowView(0))
	s.BoxMin, s.BoxMax = chem.BoundingBox(coords)
	s.FragmentCentroids = fragmentCentroids(coords, s.Fragments)
	return s, nil
}

func fragmentCentroids(coords *v3.Matrix, fragments [][]int) [][3]float64 {
	ret := make([][3]float64, len(fragments))
	for i, frag := range fragments {
		sub := v3.Zeros(len(frag))
		sub.SomeVecs(coords, frag)
		copy(ret[i][:], chem.Centroid(sub).RawRowView(0))
	}
	return ret
}

func printSummary(w io.Writer, s *Summary) {
	key := color.New(color.FgCyan, color.Bold).SprintfFunc()
	row := func(name, format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", key("%-10s", name), fmt.Sprintf(format, args...))
	}
	vec := func(v [3]float64) string {
		return fmt.Sprintf("%10.4f %10.4f %10.4f", v[0], v[1], v[2])
	}

	row("File", "%s", s.File)
	if s.Comment != "" {
		row("Comment", "%s", s.Comment)
	}
	row("Atoms", "%d", s.Atoms)
	row("Frames", "%d (showing %d)", s.Frames, s.Frame)
	row("Formula", "%s", s.Formula)
	if s.Mass > 0 {
		row("Mass", "%.3f", s.Mass)
	}
	symbols := make([]string, 0, len(s.Elements))
	for k := range s.Elements {
		symbols = append(symbols, k)
	}
	sort.Strings(symbols)
	parts := make([]string, len(symbols))
	for i, v := range symbols {
		parts[i] = fmt.Sprintf("%s:%d", v, s.Elements[v])
	}
	row("Elements", "%s", strings.Join(parts, " "))
	row("Bonds", "%d", s.Bonds)
	row("Fragments", "%d", len(s.Fragments))
	row("Rings", "%d", s.Rings)
	row("Centroid", "%s", vec(s.Centroid))
	if len(s.FragmentCentroids) > 1 {
		for i, c := range s.FragmentCentroids {
			row(fmt.Sprintf("Fragment %d", i), "%s", vec(c))
		}
	}
	row("Box min", "%s", vec(s.BoxMin))
	row("Box max", "%s", vec(s.BoxMax))
}
