package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/moleview/moleview/chemplot"
	"github.com/moleview/moleview/internal/config"
	v3 "github.com/moleview/moleview/v3"
	"github.com/urfave/cli/v3"
)

func cmdView(stdout io.Writer) *cli.Command {
	var cfg config.Render

	return &cli.Command{
		Name:      "view",
		Aliases:   []string{"v"},
		Usage:     "Draw a molecule to an image file",
		ArgsUsage: "<structure file>",
		Flags:     cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runView(ctx, c, &cfg, stdout)
		},
	}
}

// readStructure reads the structure file path. The format is taken from the
// extension unless one is given.
func readStructure(path, format string) (*chem.Molecule, error) {
	var mol *chem.Molecule
	var err error
	if format == "" {
		mol, err = chem.ReadFile(path)
	} else {
		mol, err = chem.ReadFileAs(path, format)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read structure file", goerr.V("path", path))
	}
	return mol, nil
}

// inputPath returns the single positional argument of c
func inputPath(c *cli.Command) (string, error) {
	if c.Args().Len() == 0 {
		return "", goerr.New("no structure file given")
	}
	if c.Args().Len() > 1 {
		slog.Default().Warn("only the first file is used", slog.Any("ignored", c.Args().Tail()))
	}
	return c.Args().First(), nil
}

// selectFrame returns the requested frame of mol
func selectFrame(mol chem.Framer, frame int) (*v3.Matrix, error) {
	if frame < 0 || frame >= mol.NFrames() {
		return nil, goerr.New("frame out of range", goerr.V("frame", frame), goerr.V("frames", mol.NFrames()))
	}
	return mol.Frame(frame), nil
}

// defaultOutput returns the image name used when none is given: the input
// name, without compression suffix and extension, with .png appended.
func defaultOutput(input string) string {
	name := input
	for _, suf := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(strings.ToLower(name), suf) {
			name = name[:len(name)-len(suf)]
			break
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}

func runView(_ context.Context, c *cli.Command, cfg *config.Render, stdout io.Writer) error {
	logger := slog.Default()

	path, err := inputPath(c)
	if err != nil {
		return err
	}
	if err := cfg.Load(c.IsSet); err != nil {
		return goerr.Wrap(err, "failed to load render configuration")
	}
	opts, err := cfg.Options()
	if err != nil {
		return goerr.Wrap(err, "invalid render options")
	}

	mol, err := readStructure(path, cfg.Format)
	if err != nil {
		return err
	}
	coords, err := selectFrame(mol, cfg.Frame)
	if err != nil {
		return err
	}
	logger.Debug("structure read",
		slog.String("path", path),
		slog.Int("atoms", mol.Len()),
		slog.Int("frames", mol.NFrames()),
	)

	if !opts.NoBonds {
		if err := inferBonds(mol, coords, cfg.Bonds); err != nil {
			logger.Warn("failed to assign bonds, drawing atoms only", slog.Any("error", err))
		}
	}

	opts.Title = filepath.Base(path)
	scene, err := chemplot.NewScene(mol, coords, opts)
	if err != nil {
		return goerr.Wrap(err, "failed to build scene", goerr.V("path", path))
	}

	output := cfg.Output
	if output == "" {
		output = defaultOutput(path)
	}
	if err := scene.Save(output); err != nil {
		return goerr.Wrap(err, "failed to write image", goerr.V("output", output))
	}

	logger.Info("molecule drawn",
		slog.String("input", path),
		slog.String("output", output),
		slog.Int("atoms", mol.Len()),
		slog.Int("bonds", len(chem.Bonds(mol))),
	)
	fmt.Fprintln(stdout, output)
	return nil
}
