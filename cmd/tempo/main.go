package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-tempo/internal/logger"
)

const (
	flagType    = "type"
	flagFormat  = "format"
	flagSRID    = "srid"
	flagConfig  = "config"
	flagLogJSON = "log-json"
	flagVerbose = "verbose"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tempo",
		Usage: "Parse and inspect temporal value literals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagType,
				Aliases: []string{"t"},
				Usage:   "temporal type (" + kindNames() + ")",
				Sources: cli.EnvVars("TEMPO_TYPE"),
			},
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"f"},
				Usage:   "output format (text, json, yaml, geojson, ewkb)",
				Sources: cli.EnvVars("TEMPO_FORMAT"),
			},
			&cli.IntFlag{
				Name:    flagSRID,
				Usage:   "SRID applied to tgeompoint literals",
				Sources: cli.EnvVars("TEMPO_SRID"),
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "YAML file with default settings",
				Sources: cli.EnvVars("TEMPO_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  flagLogJSON,
				Usage: "write logs as JSON lines",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newParseCommand(),
			newStreamCommand(),
			newBoxCommand(),
		},
		After: func(context.Context, *cli.Command) error {
			logger.Sync()
			return nil
		},
	}
}

// setup resolves settings, installs the logger and looks up the type.
func setup(cmd *cli.Command) (*settings, literalKind, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger.Initialize(s.LogJSON, s.Verbose)
	logger.Logger.Debugw("resolved settings",
		"command", cmd.Name,
		"type", s.Type,
		"format", s.Format,
		"srid", s.SRID,
		"config", s.ConfigPath)

	kind, err := lookupKind(s.Type)
	if err != nil {
		return nil, nil, err
	}
	return s, kind, nil
}
