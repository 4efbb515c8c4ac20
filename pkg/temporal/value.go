package temporal

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
)

// Base is the set of value domains a temporal value can carry.
type Base interface {
	bool | int | float64 | string | geom.Point
}

// Kind identifies a base value domain.
type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindFloat
	KindText
	KindGeomPoint
)

var kindNames = map[Kind]string{
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindText:      "text",
	KindGeomPoint: "geompoint",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsContinuous reports whether values of k may be linearly interpolated.
func (k Kind) IsContinuous() bool {
	return k == KindFloat || k == KindGeomPoint
}

// KindOf returns the Kind of V.
func KindOf[V Base]() Kind {
	var zero V
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindText
	default:
		return KindGeomPoint
	}
}

func compareValues[V Base](a, b V) int {
	switch x := any(a).(type) {
	case bool:
		y := any(b).(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case int:
		return cmp.Compare(x, any(b).(int))
	case float64:
		return cmp.Compare(x, any(b).(float64))
	case string:
		return strings.Compare(x, any(b).(string))
	case geom.Point:
		return geom.Compare(x, any(b).(geom.Point))
	}
	return 0
}

func minValue[V Base](a, b V) V {
	if compareValues(b, a) < 0 {
		return b
	}
	return a
}

func maxValue[V Base](a, b V) V {
	if compareValues(b, a) > 0 {
		return b
	}
	return a
}

// formatValue renders v as a base literal. Geometry SRIDs are left to the
// enclosing value's prefix.
func formatValue[V Base](v V) string {
	switch x := any(v).(type) {
	case bool:
		if x {
			return "t"
		}
		return "f"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return quoteText(x)
	case geom.Point:
		return geom.ToWKT(x)
	}
	return ""
}

func quoteText(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

func valueSRID[V Base](v V) int {
	if p, ok := any(v).(geom.Point); ok {
		return p.SRID()
	}
	return 0
}

func withValueSRID[V Base](v V, srid int) V {
	if p, ok := any(v).(geom.Point); ok {
		return any(p.WithSRID(srid)).(V)
	}
	return v
}
