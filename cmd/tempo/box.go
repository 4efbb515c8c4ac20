package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-tempo/internal/logger"
)

func newBoxCommand() *cli.Command {
	return &cli.Command{
		Name:      "box",
		Usage:     "Print the bounding box of a literal",
		ArgsUsage: "<literal>",
		Action:    boxAction,
	}
}

func boxAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: literal")
	}

	s, kind, err := setup(cmd)
	if err != nil {
		return err
	}

	v, err := kind.parse(cmd.Args().First(), s.SRID)
	if err != nil {
		return err
	}
	env, err := v.envelope()
	if err != nil {
		return err
	}
	logger.Logger.Debugw("computed box", "type", s.Type, "box", env.String())

	return writeEnvelope(cmd.Root().Writer, s.Format, env)
}
