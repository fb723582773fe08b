package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/moleview/moleview/internal/config"
	"github.com/urfave/cli/v3"
)

// Version of the moleview command
const Version = "0.1.0"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var loggerCfg config.Logger
	var viewCfg config.Render
	var logger *slog.Logger

	app := &cli.Command{
		Name:      "moleview",
		Usage:     "Draw molecules from computational chemistry structure files",
		ArgsUsage: "<structure file>",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(loggerCfg.Flags(), viewCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return ctx, nil
		},
		// moleview <file> is the same as moleview view <file>
		Action: func(ctx context.Context, c *cli.Command) error {
			return runView(ctx, c, &viewCfg, stdout)
		},
		Commands: []*cli.Command{
			cmdView(stdout),
			cmdInfo(stdout),
			cmdConvert(stdout),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
