package temporal

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
)

// TimestampPattern matches YYYY-MM-DD[( |T)hh:mm[:ss[.fraction]][zone]],
// where zone is Z, ±hh, ±hhmm or ±hh:mm. Years may be signed and longer
// than four digits.
const TimestampPattern = `-?\d{4,}-\d{2}-\d{2}(?:[ Tt]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:[Zz]|[+-]\d{2}(?::?\d{2})?)?)?`

var timestampFields = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})(?:[ Tt](\d{2}):(\d{2})(?::(\d{2})(?:\.(\d+))?)?(?:[Zz]|([+-])(\d{2})(?::?(\d{2}))?)?)?$`)

var literalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Prefix", Pattern: `(?i)(?:SRID|Interp)=`},
	{Name: "Point", Pattern: `(?i)POINT\s*(?:ZM|Z|M)?\s*\([^()]*\)`},
	// Timestamps go before words so a date is not read as text.
	{Name: "Timestamp", Pattern: TimestampPattern},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	// Unquoted values may contain inner blanks, as in an unquoted text run.
	{Name: "Word", Pattern: `[^\s@,;()\[\]{}"]+(?:[ \t]+[^\s@,;()\[\]{}"]+)*`},
	{Name: "Punct", Pattern: `[@,;()\[\]{}]`},
	{Name: "Char", Pattern: `.`},
})

func buildParser[G any]() *participle.Parser[G] {
	return participle.MustBuild[G](
		participle.Lexer(literalLexer),
		participle.UseLookahead(2),
	)
}

var (
	literalParser      = buildParser[literalAST]()
	valueParser        = buildParser[valueAST]()
	rangeParser        = buildParser[rangeAST]()
	timestampParser    = buildParser[timestampAST]()
	periodParser       = buildParser[periodAST]()
	periodSetParser    = buildParser[periodSetAST]()
	timestampSetParser = buildParser[timestampSetAST]()
)

// literalAST is one temporal literal: optional SRID and Interp prefixes
// followed by a set, a sequence or a single instant.
type literalAST struct {
	Pos      lexer.Position
	Prefixes []*prefixAST `@@*`
	Set      *setAST      `( @@`
	Sequence *sequenceAST `| @@`
	Instant  *instantAST  `| @@ )`
}

type prefixAST struct {
	Pos   lexer.Position
	Key   string `@Prefix`
	Value string `@Word ";"`
}

func (p *prefixAST) isSRID() bool { return strings.EqualFold(p.Key, "SRID=") }

// setAST is either a sequence set or an instant set.
type setAST struct {
	Sequences []*sequenceAST `"{" ( @@ ( "," @@ )*`
	Instants  []*instantAST  `    | @@ ( "," @@ )* ) "}"`
}

type sequenceAST struct {
	Lower    string        `@( "[" | "(" )`
	Instants []*instantAST `@@ ( "," @@ )*`
	Upper    string        `@( "]" | ")" )`
}

type instantAST struct {
	Value *valueAST     `@@ "@"`
	Time  *timestampAST `@@`
}

type valueAST struct {
	Pos    lexer.Position
	SRID   *prefixAST `@@?`
	Point  *string    `( @Point`
	Quoted *string    `| @String`
	Word   *string    `| @( Word | Timestamp ) )`
}

type timestampAST struct {
	Pos   lexer.Position
	Value string `@Timestamp`
}

type rangeAST struct {
	Lower string    `@( "[" | "(" )`
	From  *valueAST `@@ ","`
	To    *valueAST `@@`
	Upper string    `@( "]" | ")" )`
}

type periodAST struct {
	Lower string        `@( "[" | "(" )`
	From  *timestampAST `@@ ","`
	To    *timestampAST `@@`
	Upper string        `@( "]" | ")" )`
}

type periodSetAST struct {
	Periods []*periodAST `"{" @@ ( "," @@ )* "}"`
}

type timestampSetAST struct {
	Timestamps []*timestampAST `"{" @@ ( "," @@ )* "}"`
}

// ParseTemporal parses a single literal of any duration.
func ParseTemporal[V Base](s string, opts ...Option) (Temporal[V], error) {
	return parseAll(s, func(c *Cursor) (Temporal[V], error) { return NextTemporal[V](c, opts...) })
}

func ParseInstant[V Base](s string, opts ...Option) (Instant[V], error) {
	return parseAll(s, func(c *Cursor) (Instant[V], error) { return NextInstant[V](c, opts...) })
}

func ParseInstantSet[V Base](s string, opts ...Option) (InstantSet[V], error) {
	return parseAll(s, func(c *Cursor) (InstantSet[V], error) { return NextInstantSet[V](c, opts...) })
}

func ParseSequence[V Base](s string, opts ...Option) (Sequence[V], error) {
	return parseAll(s, func(c *Cursor) (Sequence[V], error) { return NextSequence[V](c, opts...) })
}

func ParseSequenceSet[V Base](s string, opts ...Option) (SequenceSet[V], error) {
	return parseAll(s, func(c *Cursor) (SequenceSet[V], error) { return NextSequenceSet[V](c, opts...) })
}

func ParseRange[V Base](s string) (Range[V], error) {
	return parseAll(s, NextRange[V])
}

func ParseValue[V Base](s string) (V, error) {
	return parseAll(s, NextValue[V])
}

// ParseTimestamp accepts the forms matched by TimestampPattern. A missing
// zone means UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return parseAll(s, NextTimestamp)
}

func ParsePeriod(s string) (Period, error) {
	return parseAll(s, NextPeriod)
}

func ParsePeriodSet(s string) (PeriodSet, error) {
	return parseAll(s, NextPeriodSet)
}

func ParseTimestampSet(s string) (TimestampSet, error) {
	return parseAll(s, NextTimestampSet)
}

func parseAll[T any](s string, next func(*Cursor) (T, error)) (T, error) {
	c := NewCursor(s)
	v, err := next(c)
	if err != nil {
		var zero T
		return zero, err
	}
	if c.HasNext() {
		var zero T
		return zero, c.errorAt(c.Pos(), "end of input")
	}
	return v, nil
}

// Literals iterates over concatenated temporal literals in s. Iteration
// stops after the first error.
func Literals[V Base](s string, opts ...Option) iter.Seq2[Temporal[V], error] {
	return func(yield func(Temporal[V], error) bool) {
		c := NewCursor(s)
		for c.HasNext() {
			v, err := NextTemporal[V](c, opts...)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// NextTemporal reads one literal of any duration.
func NextTemporal[V Base](c *Cursor, opts ...Option) (Temporal[V], error) {
	return parse(c, literalParser, func(lit *literalAST) (Temporal[V], error) {
		o, interp, err := buildHeader[V](c, lit.Prefixes, opts)
		if err != nil {
			return nil, err
		}
		switch {
		case lit.Set != nil && lit.Set.Sequences != nil:
			return buildSequenceSet[V](c, lit.Set.Sequences, o)
		case lit.Sequence != nil:
			return buildSequence[V](c, lit.Sequence, o)
		case interp != 0:
			return nil, c.errorAt(lit.Pos.Offset, "sequence or sequence set after Interp prefix")
		case lit.Set != nil:
			return buildInstantSet[V](c, lit.Set.Instants, o)
		}
		return buildInstant[V](c, lit.Instant, o.srid)
	})
}

func NextInstant[V Base](c *Cursor, opts ...Option) (Instant[V], error) {
	return parse(c, literalParser, func(lit *literalAST) (Instant[V], error) {
		o, interp, err := buildHeader[V](c, lit.Prefixes, opts)
		if err != nil {
			return Instant[V]{}, err
		}
		if lit.Instant == nil || interp != 0 {
			return Instant[V]{}, c.errorAt(lit.Pos.Offset, "instant without Interp prefix")
		}
		return buildInstant[V](c, lit.Instant, o.srid)
	})
}

func NextInstantSet[V Base](c *Cursor, opts ...Option) (InstantSet[V], error) {
	return parse(c, literalParser, func(lit *literalAST) (InstantSet[V], error) {
		o, interp, err := buildHeader[V](c, lit.Prefixes, opts)
		if err != nil {
			return InstantSet[V]{}, err
		}
		if lit.Set == nil || lit.Set.Instants == nil || interp != 0 {
			return InstantSet[V]{}, c.errorAt(lit.Pos.Offset, "instant set without Interp prefix")
		}
		return buildInstantSet[V](c, lit.Set.Instants, o)
	})
}

func NextSequence[V Base](c *Cursor, opts ...Option) (Sequence[V], error) {
	return parse(c, literalParser, func(lit *literalAST) (Sequence[V], error) {
		o, _, err := buildHeader[V](c, lit.Prefixes, opts)
		if err != nil {
			return Sequence[V]{}, err
		}
		if lit.Sequence == nil {
			return Sequence[V]{}, c.errorAt(lit.Pos.Offset, "'[' or '(' opening a sequence")
		}
		return buildSequence[V](c, lit.Sequence, o)
	})
}

func NextSequenceSet[V Base](c *Cursor, opts ...Option) (SequenceSet[V], error) {
	return parse(c, literalParser, func(lit *literalAST) (SequenceSet[V], error) {
		o, _, err := buildHeader[V](c, lit.Prefixes, opts)
		if err != nil {
			return SequenceSet[V]{}, err
		}
		if lit.Set == nil || lit.Set.Sequences == nil {
			return SequenceSet[V]{}, c.errorAt(lit.Pos.Offset, "'{' opening a sequence set")
		}
		return buildSequenceSet[V](c, lit.Set.Sequences, o)
	})
}

// NextRange reads a bracketed pair of base values.
func NextRange[V Base](c *Cursor) (Range[V], error) {
	return parse(c, rangeParser, func(r *rangeAST) (Range[V], error) {
		lower, err := buildValue[V](c, r.From)
		if err != nil {
			return Range[V]{}, err
		}
		upper, err := buildValue[V](c, r.To)
		if err != nil {
			return Range[V]{}, err
		}
		return NewRangeInc(lower, upper, r.Lower == "[", r.Upper == "]")
	})
}

func NextValue[V Base](c *Cursor) (V, error) {
	return parse(c, valueParser, func(v *valueAST) (V, error) {
		return buildValue[V](c, v)
	})
}

func NextTimestamp(c *Cursor) (time.Time, error) {
	return parse(c, timestampParser, c.timestamp)
}

func NextPeriod(c *Cursor) (Period, error) {
	return parse(c, periodParser, c.period)
}

func NextPeriodSet(c *Cursor) (PeriodSet, error) {
	return parse(c, periodSetParser, func(set *periodSetAST) (PeriodSet, error) {
		periods := make([]Period, 0, len(set.Periods))
		for _, p := range set.Periods {
			period, err := c.period(p)
			if err != nil {
				return PeriodSet{}, err
			}
			periods = append(periods, period)
		}
		return NewPeriodSet(periods...)
	})
}

func NextTimestampSet(c *Cursor) (TimestampSet, error) {
	return parse(c, timestampSetParser, func(set *timestampSetAST) (TimestampSet, error) {
		ts := make([]time.Time, 0, len(set.Timestamps))
		for _, t := range set.Timestamps {
			v, err := c.timestamp(t)
			if err != nil {
				return TimestampSet{}, err
			}
			ts = append(ts, v)
		}
		return NewTimestampSet(ts...)
	})
}

// buildHeader checks the SRID and Interp prefixes and merges them with the
// caller's options. The returned interpolation is the prefix's, or zero.
func buildHeader[V Base](c *Cursor, prefixes []*prefixAST, opts []Option) (options, Interpolation, error) {
	o := applyOptions(opts)
	var (
		interp  Interpolation
		hasSRID bool
	)
	for _, p := range prefixes {
		if p.isSRID() {
			if kind := KindOf[V](); kind != KindGeomPoint {
				return o, 0, c.errorAt(p.Pos.Offset, "no SRID prefix for "+kind.String())
			}
			if hasSRID {
				return o, 0, c.errorAt(p.Pos.Offset, "a single SRID prefix")
			}
			hasSRID = true
			srid, err := c.srid(p)
			if err != nil {
				return o, 0, err
			}
			if o.srid, err = ResolveSRID(o.srid, srid); err != nil {
				return o, 0, err
			}
			continue
		}
		if interp != 0 {
			return o, 0, c.errorAt(p.Pos.Offset, "a single Interp prefix")
		}
		i, err := ParseInterpolation(p.Value)
		if err != nil {
			return o, 0, err
		}
		interp = i
	}
	if interp != 0 {
		if o.interp != 0 && o.interp != interp {
			return o, 0, errors.Wrapf(ErrInvalidInterpolation, "prefix %s conflicts with requested %s", interp, o.interp)
		}
		o.interp = interp
	}
	return o, interp, nil
}

func (c *Cursor) srid(p *prefixAST) (int, error) {
	srid, err := strconv.Atoi(p.Value)
	if err != nil || srid < 0 {
		return 0, c.errorAt(p.Pos.Offset, "SRID=<integer>;")
	}
	return srid, nil
}

func buildInstant[V Base](c *Cursor, in *instantAST, srid int) (Instant[V], error) {
	v, err := buildValue[V](c, in.Value)
	if err != nil {
		return Instant[V]{}, err
	}
	t, err := c.timestamp(in.Time)
	if err != nil {
		return Instant[V]{}, err
	}
	return NewInstant(v, t, WithSRID(srid))
}

func buildInstants[V Base](c *Cursor, list []*instantAST) ([]Instant[V], error) {
	instants := make([]Instant[V], 0, len(list))
	for _, in := range list {
		v, err := buildInstant[V](c, in, 0)
		if err != nil {
			return nil, err
		}
		instants = append(instants, v)
	}
	return instants, nil
}

func buildInstantSet[V Base](c *Cursor, list []*instantAST, o options) (InstantSet[V], error) {
	instants, err := buildInstants[V](c, list)
	if err != nil {
		return InstantSet[V]{}, err
	}
	return NewInstantSet(instants, o.list()...)
}

func buildSequence[V Base](c *Cursor, seq *sequenceAST, o options) (Sequence[V], error) {
	instants, err := buildInstants[V](c, seq.Instants)
	if err != nil {
		return Sequence[V]{}, err
	}
	return NewSequence(instants, seq.Lower == "[", seq.Upper == "]", o.list()...)
}

func buildSequenceSet[V Base](c *Cursor, list []*sequenceAST, o options) (SequenceSet[V], error) {
	sequences := make([]Sequence[V], 0, len(list))
	for _, seq := range list {
		s, err := buildSequence[V](c, seq, options{})
		if err != nil {
			return SequenceSet[V]{}, err
		}
		sequences = append(sequences, s)
	}
	return NewSequenceSet(sequences, o.list()...)
}

func (c *Cursor) period(p *periodAST) (Period, error) {
	lower, err := c.timestamp(p.From)
	if err != nil {
		return Period{}, err
	}
	upper, err := c.timestamp(p.To)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(lower, upper, p.Lower == "[", p.Upper == "]")
}

// buildValue converts a value token for the base type V. Only points take
// an SRID=n; prefix.
func buildValue[V Base](c *Cursor, v *valueAST) (V, error) {
	var zero V
	kind := KindOf[V]()
	if v.SRID != nil && kind != KindGeomPoint {
		return zero, c.errorAt(v.Pos.Offset, kind.String()+" value without SRID prefix")
	}

	var (
		out any
		ok  bool
	)
	switch any(zero).(type) {
	case bool:
		out, ok = boolValue(v)
	case int:
		out, ok = intValue(v)
	case float64:
		out, ok = floatValue(v)
	case string:
		out, ok = textValue(v)
	case geom.Point:
		p, err := c.pointValue(v)
		if err != nil {
			return zero, err
		}
		out, ok = p, true
	}
	if !ok {
		return zero, c.errorAt(v.Pos.Offset, kind.String()+" value")
	}
	return out.(V), nil
}

func boolValue(v *valueAST) (bool, bool) {
	if v.Word == nil {
		return false, false
	}
	switch strings.ToLower(*v.Word) {
	case "t", "true":
		return true, true
	case "f", "false":
		return false, true
	}
	return false, false
}

func intValue(v *valueAST) (int, bool) {
	if v.Word == nil {
		return 0, false
	}
	n, err := strconv.Atoi(*v.Word)
	return n, err == nil
}

func floatValue(v *valueAST) (float64, bool) {
	if v.Word == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(*v.Word, 64)
	return f, err == nil
}

// textValue unescapes \" and \\ in a quoted string. Unquoted runs are
// taken as they are.
func textValue(v *valueAST) (string, bool) {
	switch {
	case v.Word != nil:
		return *v.Word, true
	case v.Point != nil:
		return *v.Point, true
	case v.Quoted == nil:
		return "", false
	}
	quoted := *v.Quoted
	var b strings.Builder
	for i := 1; i < len(quoted)-1; i++ {
		if quoted[i] == '\\' {
			i++
		}
		b.WriteByte(quoted[i])
	}
	return b.String(), true
}

// pointValue reads POINT WKT or hex EWKB, reconciling the SRID prefix
// with one embedded in the EWKB.
func (c *Cursor) pointValue(v *valueAST) (geom.Point, error) {
	srid := 0
	if v.SRID != nil {
		if !v.SRID.isSRID() {
			return geom.Point{}, c.errorAt(v.Pos.Offset, "SRID=<integer>;")
		}
		n, err := c.srid(v.SRID)
		if err != nil {
			return geom.Point{}, err
		}
		srid = n
	}

	switch {
	case v.Point != nil:
		p, err := geom.ParseWKT(*v.Point, srid)
		if err != nil {
			return geom.Point{}, c.errorAt(v.Pos.Offset, "point geometry")
		}
		return p, nil
	case v.Word != nil:
		p, err := geom.ParseHexEWKB(*v.Word)
		if err != nil {
			return geom.Point{}, c.errorAt(v.Pos.Offset, "hex encoded point")
		}
		resolved, err := ResolveSRID(srid, p.SRID())
		if err != nil {
			return geom.Point{}, err
		}
		return p.WithSRID(resolved), nil
	}
	return geom.Point{}, c.errorAt(v.Pos.Offset, "point geometry")
}

func (c *Cursor) timestamp(ts *timestampAST) (time.Time, error) {
	t, ok := timestampOf(ts.Value)
	if !ok {
		return time.Time{}, c.errorAt(ts.Pos.Offset, "timestamp")
	}
	return t, nil
}

// timestampOf validates the fields of a lexed timestamp and normalizes
// it to UTC. Fractions beyond nanoseconds are truncated.
func timestampOf(s string) (time.Time, bool) {
	m := timestampFields.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	field := func(i int) int {
		n, _ := strconv.Atoi(m[i])
		return n
	}
	year, month, day := field(1), field(2), field(3)
	hour, minute, sec := field(4), field(5), field(6)

	nsec := 0
	if frac := m[7]; frac != "" {
		nsec, _ = strconv.Atoi((frac + "000000000")[:9])
	}
	offset := 0
	if sign := m[8]; sign != "" {
		oh, om := field(9), field(10)
		if oh > 15 || om > 59 {
			return time.Time{}, false
		}
		offset = (oh*60 + om) * 60
		if sign == "-" {
			offset = -offset
		}
	}

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.FixedZone("", offset))
	if t.Day() != day {
		return time.Time{}, false
	}
	return NormalizeTime(t), true
}
