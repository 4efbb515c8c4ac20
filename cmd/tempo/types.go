package main

import (
	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

type literalSummary struct {
	Type          string `json:"type" yaml:"type"`
	Duration      string `json:"duration" yaml:"duration"`
	Interpolation string `json:"interpolation" yaml:"interpolation"`
	SRID          int    `json:"srid,omitempty" yaml:"srid,omitempty"`
	NumInstants   int    `json:"numInstants" yaml:"num_instants"`
	Start         string `json:"start" yaml:"start"`
	End           string `json:"end" yaml:"end"`
	Timespan      string `json:"timespan" yaml:"timespan"`
	MinValue      string `json:"minValue" yaml:"min_value"`
	MaxValue      string `json:"maxValue" yaml:"max_value"`
	Literal       string `json:"literal" yaml:"literal"`
}

func newLiteralSummary[V temporal.Base](t temporal.Temporal[V]) *literalSummary {
	return &literalSummary{
		Type:          "t" + temporal.KindOf[V]().String(),
		Duration:      t.Duration().String(),
		Interpolation: t.Interpolation().String(),
		SRID:          t.SRID(),
		NumInstants:   t.NumInstants(),
		Start:         temporal.FormatTimestamp(t.StartTimestamp()),
		End:           temporal.FormatTimestamp(t.EndTimestamp()),
		Timespan:      t.Timespan().String(),
		MinValue:      temporal.FormatValue(t.MinValue()),
		MaxValue:      temporal.FormatValue(t.MaxValue()),
		Literal:       t.String(),
	}
}

type boxSummary struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
}
