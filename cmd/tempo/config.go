package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML defaults file.
type fileConfig struct {
	Type    string `yaml:"type"`
	Format  string `yaml:"format"`
	SRID    int    `yaml:"srid"`
	LogJSON bool   `yaml:"log_json"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

// settings is the effective configuration of one command run.
// Precedence: flag, then environment, then config file, then default.
type settings struct {
	Type       string
	Format     string
	SRID       int
	LogJSON    bool
	Verbose    bool
	ConfigPath string
}

func resolveSettings(cmd *cli.Command) (*settings, error) {
	path := cmd.String(flagConfig)
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	s := &settings{
		Type:       cfg.Type,
		Format:     formatText,
		SRID:       cfg.SRID,
		LogJSON:    cfg.LogJSON,
		Verbose:    cmd.Bool(flagVerbose),
		ConfigPath: path,
	}
	if cfg.Format != "" {
		s.Format = cfg.Format
	}
	if cmd.IsSet(flagType) {
		s.Type = cmd.String(flagType)
	}
	if cmd.IsSet(flagFormat) {
		s.Format = cmd.String(flagFormat)
	}
	if cmd.IsSet(flagSRID) {
		s.SRID = cmd.Int(flagSRID)
	}
	if cmd.IsSet(flagLogJSON) {
		s.LogJSON = cmd.Bool(flagLogJSON)
	}

	if s.Type == "" {
		return nil, fmt.Errorf("flag --type is required (one of %s)", kindNames())
	}
	if !slices.Contains(formats, s.Format) {
		return nil, fmt.Errorf("unknown format %q", s.Format)
	}
	if s.SRID < 0 {
		return nil, fmt.Errorf("invalid SRID %d", s.SRID)
	}
	return s, nil
}
