package main

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/robert-malhotra/go-tempo/pkg/box"
	"github.com/robert-malhotra/go-tempo/pkg/geom"
	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

// literalKind parses literals of one base type.
type literalKind interface {
	parse(s string, srid int) (value, error)
	literals(s string, srid int) iter.Seq2[value, error]
}

// value is a parsed temporal value with its base type erased.
type value interface {
	String() string
	summary() *literalSummary
	envelope() (fmt.Stringer, error)
	feature() (*geojson.Feature, error)
	ewkb() ([]string, error)
}

var kinds = map[string]literalKind{
	"tbool":      kindOf[bool]{},
	"tint":       kindOf[int]{},
	"tfloat":     kindOf[float64]{},
	"ttext":      kindOf[string]{},
	"tgeompoint": kindOf[geom.Point]{},
}

func kindNames() string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func lookupKind(name string) (literalKind, error) {
	k, ok := kinds[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown type %q (one of %s)", name, kindNames())
	}
	return k, nil
}

type kindOf[V temporal.Base] struct{}

func (kindOf[V]) options(srid int) []temporal.Option {
	if srid == 0 || temporal.KindOf[V]() != temporal.KindGeomPoint {
		return nil
	}
	return []temporal.Option{temporal.WithSRID(srid)}
}

func (k kindOf[V]) parse(s string, srid int) (value, error) {
	t, err := temporal.ParseTemporal[V](s, k.options(srid)...)
	if err != nil {
		return nil, err
	}
	return literal[V]{t: t}, nil
}

func (k kindOf[V]) literals(s string, srid int) iter.Seq2[value, error] {
	return func(yield func(value, error) bool) {
		for t, err := range temporal.Literals[V](s, k.options(srid)...) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(literal[V]{t: t}, nil) {
				return
			}
		}
	}
}

type literal[V temporal.Base] struct {
	t temporal.Temporal[V]
}

func (l literal[V]) String() string { return l.t.String() }

func (l literal[V]) summary() *literalSummary { return newLiteralSummary(l.t) }

// envelope bounds numbers and points by value and time. Other types only
// get a time box.
func (l literal[V]) envelope() (fmt.Stringer, error) {
	switch t := any(l.t).(type) {
	case temporal.Temporal[int]:
		return box.TBoxOf(t), nil
	case temporal.Temporal[float64]:
		return box.TBoxOf(t), nil
	case temporal.Temporal[geom.Point]:
		b, err := box.STBoxOf(t)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return box.TBoxFromPeriod(l.t.Period()), nil
}

// feature renders a temporal point as a GeoJSON feature whose geometry is
// the track through its instants.
func (l literal[V]) feature() (*geojson.Feature, error) {
	t, ok := any(l.t).(temporal.Temporal[geom.Point])
	if !ok {
		return nil, fmt.Errorf("geojson output needs tgeompoint, got t%s", temporal.KindOf[V]())
	}
	instants := t.Instants()
	points := make([]geom.Point, len(instants))
	for i, in := range instants {
		points[i] = in.Value()
	}
	track, err := geom.Track(points)
	if err != nil {
		return nil, err
	}
	return &geojson.Feature{
		Geometry: track,
		Properties: map[string]any{
			"duration": t.Duration().String(),
			"start":    temporal.FormatTimestamp(t.StartTimestamp()),
			"end":      temporal.FormatTimestamp(t.EndTimestamp()),
			"literal":  t.String(),
		},
	}, nil
}

// ewkb renders each instant of a temporal point as hex EWKB followed by
// '@' and its timestamp.
func (l literal[V]) ewkb() ([]string, error) {
	t, ok := any(l.t).(temporal.Temporal[geom.Point])
	if !ok {
		return nil, fmt.Errorf("ewkb output needs tgeompoint, got t%s", temporal.KindOf[V]())
	}
	var lines []string
	for _, in := range t.Instants() {
		hex, err := geom.ToHexEWKB(in.Value())
		if err != nil {
			return nil, err
		}
		lines = append(lines, hex+"@"+temporal.FormatTimestamp(in.Timestamp()))
	}
	return lines, nil
}
