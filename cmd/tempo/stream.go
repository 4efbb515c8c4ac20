package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-tempo/internal/logger"
)

func newStreamCommand() *cli.Command {
	return &cli.Command{
		Name:      "stream",
		Usage:     "Read concatenated literals from a file or stdin and print one per line",
		ArgsUsage: "[file]",
		Action:    streamAction,
	}
}

func streamAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("expected at most 1 argument: file")
	}

	s, kind, err := setup(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	return writeStream(cmd.Root().Writer, s.Format, logProgress(ctx, kind.literals(input, s.SRID)))
}

func readInput(cmd *cli.Command) (string, error) {
	var r io.Reader = cmd.Root().Reader
	if cmd.Args().Len() == 1 && cmd.Args().First() != "-" {
		f, err := os.Open(cmd.Args().First())
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// logProgress logs each literal at debug level and stops early when ctx
// is cancelled.
func logProgress(ctx context.Context, seq iter.Seq2[value, error]) iter.Seq2[value, error] {
	return func(yield func(value, error) bool) {
		n := 0
		for v, err := range seq {
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				logger.Logger.Debugw("stream stopped", "index", n, "error", err)
				yield(nil, err)
				return
			}
			logger.Logger.Debugw("stream literal", "index", n, "duration", v.summary().Duration)
			n++
			if !yield(v, nil) {
				return
			}
		}
		logger.Logger.Debugw("stream finished", "count", n)
	}
}
