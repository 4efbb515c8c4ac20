package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
)

// TimestampLayout is the canonical timestamp form. Values are always
// rendered in UTC and the fraction is dropped when zero.
const TimestampLayout = "2006-01-02T15:04:05.999999-0700"

// FormatTimestamp renders t in canonical form, e.g. 2011-01-01T00:00:00+0000.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatValue renders a base value as it appears inside a literal.
func FormatValue[V Base](v V) string {
	return formatValue(v)
}

func openBracket(inclusive bool) byte {
	if inclusive {
		return '['
	}
	return '('
}

func closeBracket(inclusive bool) byte {
	if inclusive {
		return ']'
	}
	return ')'
}

// writePrefix emits SRID=n; for a set SRID and Interp=...; when interp
// differs from the kind's default.
func writePrefix[V Base](b *strings.Builder, srid int, interp Interpolation) {
	if srid != 0 {
		b.WriteString("SRID=")
		b.WriteString(strconv.Itoa(srid))
		b.WriteByte(';')
	}
	if interp != 0 && interp != DefaultInterpolation(KindOf[V]()) {
		b.WriteString("Interp=")
		b.WriteString(interp.String())
		b.WriteByte(';')
	}
}

func (i Instant[V]) writeTo(b *strings.Builder) {
	b.WriteString(formatValue(i.value))
	b.WriteByte('@')
	b.WriteString(FormatTimestamp(i.t))
}

func writeInstants[V Base](b *strings.Builder, instants []Instant[V]) {
	for n, in := range instants {
		if n > 0 {
			b.WriteString(", ")
		}
		in.writeTo(b)
	}
}

func (s Sequence[V]) writeBody(b *strings.Builder) {
	b.WriteByte(openBracket(s.lowerInc))
	writeInstants(b, s.list)
	b.WriteByte(closeBracket(s.upperInc))
}

func (i Instant[V]) String() string {
	var b strings.Builder
	writePrefix[V](&b, i.SRID(), 0)
	i.writeTo(&b)
	return b.String()
}

func (s InstantSet[V]) String() string {
	var b strings.Builder
	writePrefix[V](&b, s.SRID(), 0)
	b.WriteByte('{')
	writeInstants(&b, s.list)
	b.WriteByte('}')
	return b.String()
}

func (s Sequence[V]) String() string {
	var b strings.Builder
	writePrefix[V](&b, s.SRID(), s.interp)
	s.writeBody(&b)
	return b.String()
}

func (s SequenceSet[V]) String() string {
	var b strings.Builder
	writePrefix[V](&b, s.SRID(), s.interp)
	b.WriteByte('{')
	for n, seq := range s.sequences {
		if n > 0 {
			b.WriteString(", ")
		}
		seq.writeBody(&b)
	}
	b.WriteByte('}')
	return b.String()
}

// String renders a range. Point bounds keep their own SRID prefix.
func (r Range[V]) String() string {
	var b strings.Builder
	b.WriteByte(openBracket(r.lowerInc))
	b.WriteString(formatRangeBound(r.lower))
	b.WriteString(", ")
	b.WriteString(formatRangeBound(r.upper))
	b.WriteByte(closeBracket(r.upperInc))
	return b.String()
}

func formatRangeBound[V Base](v V) string {
	if p, ok := any(v).(geom.Point); ok {
		return p.String()
	}
	return formatValue(v)
}

func (p Period) String() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

func (p Period) writeTo(b *strings.Builder) {
	b.WriteByte(openBracket(p.lowerInc))
	b.WriteString(FormatTimestamp(p.lower))
	b.WriteString(", ")
	b.WriteString(FormatTimestamp(p.upper))
	b.WriteByte(closeBracket(p.upperInc))
}

func (ps PeriodSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for n, p := range ps.periods {
		if n > 0 {
			b.WriteString(", ")
		}
		p.writeTo(&b)
	}
	b.WriteByte('}')
	return b.String()
}

func (s TimestampSet) String() string {
	parts := make([]string, len(s.timestamps))
	for i, t := range s.timestamps {
		parts[i] = FormatTimestamp(t)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
