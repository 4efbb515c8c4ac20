package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-tempo/pkg/box"
)

const (
	formatText    = "text"
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatGeoJSON = "geojson"
	formatEWKB    = "ewkb"
)

var formats = []string{formatText, formatJSON, formatYAML, formatGeoJSON, formatEWKB}

func writeValue(w io.Writer, format string, v value) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v.summary(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		return writeYAML(w, v.summary())
	case formatGeoJSON:
		f, err := v.feature()
		if err != nil {
			return err
		}
		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatEWKB:
		return writeEWKB(w, v)
	}
	_, err := fmt.Fprintln(w, v.String())
	return err
}

// writeEWKB prints one hex@timestamp line per instant.
func writeEWKB(w io.Writer, v value) error {
	lines, err := v.ewkb()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeStream prints text and YAML as values arrive. JSON and GeoJSON
// need the whole input before writing the enclosing array.
func writeStream(w io.Writer, format string, seq iter.Seq2[value, error]) error {
	switch format {
	case formatJSON:
		entries, err := collectForCLI(seq, func(v value) ([]byte, error) {
			return json.Marshal(v.summary())
		})
		if err != nil {
			return err
		}
		return printJSONArray(w, entries)
	case formatGeoJSON:
		fc := &geojson.FeatureCollection{}
		for v, err := range seq {
			if err != nil {
				return err
			}
			f, err := v.feature()
			if err != nil {
				return err
			}
			fc.Features = append(fc.Features, f)
		}
		data, err := json.Marshal(fc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for v, err := range seq {
			if err != nil {
				return err
			}
			if err := enc.Encode(v.summary()); err != nil {
				return err
			}
		}
		return enc.Close()
	}
	for v, err := range seq {
		if err != nil {
			return err
		}
		if format == formatEWKB {
			if err := writeEWKB(w, v); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeEnvelope(w io.Writer, format string, env fmt.Stringer) error {
	summary := &boxSummary{Literal: env.String()}
	switch b := env.(type) {
	case box.TBox:
		summary.Type = "TBOX"
	case box.STBox:
		summary.Type = "STBOX"
		if format == formatGeoJSON {
			g := b.Geometry()
			if g == nil {
				return fmt.Errorf("box has no spatial extent")
			}
			data, err := geojson.Marshal(g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		return writeYAML(w, summary)
	case formatGeoJSON, formatEWKB:
		return fmt.Errorf("%s output needs tgeompoint", format)
	}
	_, err := fmt.Fprintln(w, summary.Literal)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func collectForCLI[T any](seq iter.Seq2[T, error], marshal func(T) ([]byte, error)) ([][]byte, error) {
	var (
		results [][]byte
		iterErr error
	)

	seq(func(v T, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}
		data, err := marshal(v)
		if err != nil {
			iterErr = err
			return false
		}
		results = append(results, data)
		return true
	})

	if iterErr != nil {
		return nil, iterErr
	}
	return results, nil
}

func printJSONArray(w io.Writer, entries [][]byte) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, string(entry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "]")
	return err
}
