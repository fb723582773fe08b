package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	chem "github.com/moleview/moleview"
	"github.com/urfave/cli/v3"
)

func cmdConvert(stdout io.Writer) *cli.Command {
	var (
		format string
		frame  int
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Write a frame of a structure file in another format (xyz, pdb, optionally .gz or .zst)",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Format of the input file (xyz, pdb), when it can't be told from its extension",
				Destination: &format,
			},
			&cli.IntFlag{
				Name:        "frame",
				Usage:       "Frame to write, starting from 0",
				Destination: &frame,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return goerr.New("convert needs an input and an output file", goerr.V("args", c.Args().Slice()))
			}
			in, out := c.Args().Get(0), c.Args().Get(1)
			if chem.Format(out) == "" {
				return goerr.New("unknown output format", goerr.V("output", out))
			}

			mol, err := readStructure(in, format)
			if err != nil {
				return err
			}
			if _, err := selectFrame(mol, frame); err != nil {
				return err
			}
			if err := chem.WriteFile(out, mol, frame); err != nil {
				return goerr.Wrap(err, "failed to write structure file", goerr.V("output", out))
			}

			slog.Default().Info("structure converted",
				slog.String("input", in),
				slog.String("output", out),
				slog.Int("frame", frame),
			)
			fmt.Fprintln(stdout, out)
			return nil
		},
	}
}
