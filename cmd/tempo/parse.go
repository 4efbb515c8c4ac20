package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-tempo/internal/logger"
)

func newParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse one literal and print it in canonical form",
		ArgsUsage: "<literal>",
		Action:    parseAction,
	}
}

func parseAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: literal")
	}

	s, kind, err := setup(cmd)
	if err != nil {
		return err
	}

	v, err := kind.parse(cmd.Args().First(), s.SRID)
	if err != nil {
		logger.Logger.Debugw("parse failed", "type", s.Type, "error", err)
		return err
	}
	logger.Logger.Debugw("parsed literal", "type", s.Type, "duration", v.summary().Duration)

	return writeValue(cmd.Root().Writer, s.Format, v)
}
