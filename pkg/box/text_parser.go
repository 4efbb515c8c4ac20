package box

import (
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

var boxLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	// Timestamps go before numbers so the year is not taken as a number.
	{Name: "Timestamp", Pattern: temporal.TimestampPattern},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?|[-+]?(?i:inf)`},
	{Name: "Keyword", Pattern: `(?i)(?:GEODSTBOX|STBOX|TBOX|SRID)`},
	{Name: "Dims", Pattern: `(?i)(?:ZT|Z|T)`},
	{Name: "Punct", Pattern: `[(),;=]`},
})

var boxParser = participle.MustBuild[boxLiteral](
	participle.Lexer(boxLexer),
	participle.CaseInsensitive("Keyword", "Dims"),
	participle.UseLookahead(2),
)

type boxLiteral struct {
	SRID   *string     `( "SRID" "=" @Number ";" )?`
	Kind   string      `@Keyword`
	Dims   string      `@Dims?`
	Tuples []*boxTuple `"(" ( @@ ( "," @@ )* )? ")"`
}

type boxTuple struct {
	Tokens []string `"(" @( "," | Number | Timestamp )* ")"`
}

func (t *boxTuple) width() int {
	n := 1
	for _, tok := range t.Tokens {
		if tok == "," {
			n++
		}
	}
	return n
}

// fields splits a tuple on commas. Blank slots come back as "".
func (t *boxTuple) fields() ([]string, error) {
	fields := []string{""}
	for _, tok := range t.Tokens {
		if tok == "," {
			fields = append(fields, "")
			continue
		}
		if fields[len(fields)-1] != "" {
			return nil, errors.Errorf("missing ',' before %q", tok)
		}
		fields[len(fields)-1] = tok
	}
	return fields, nil
}

func parseBox(s string) (*boxLiteral, error) {
	lit, err := boxParser.ParseString("", s)
	if err != nil {
		lerr := &temporal.LiteralError{Expected: "box literal", Found: s}
		var perr participle.Error
		if errors.As(err, &perr) {
			lerr.Pos = perr.Position().Offset
			lerr.Found = strings.TrimSpace(s[min(lerr.Pos, len(s)):])
			lerr.Expected = perr.Message()
		}
		return nil, lerr
	}
	return lit, nil
}

func malformed(s, expected string) error {
	return &temporal.LiteralError{Expected: expected, Found: s}
}

// corners returns the fields of the lower and upper tuple, which must have
// n fields each and agree on which slots are blank.
func (lit *boxLiteral) corners(s string, n int) (lo, hi []string, err error) {
	if len(lit.Tuples) != 2 {
		return nil, nil, malformed(s, "two corner tuples")
	}
	if lo, err = lit.Tuples[0].fields(); err != nil {
		return nil, nil, malformed(s, err.Error())
	}
	if hi, err = lit.Tuples[1].fields(); err != nil {
		return nil, nil, malformed(s, err.Error())
	}
	if len(lo) != n || len(hi) != n {
		return nil, nil, malformed(s, strconv.Itoa(n)+" fields per corner")
	}
	for i := range lo {
		if (lo[i] == "") != (hi[i] == "") {
			return nil, nil, malformed(s, "matching blank fields in both corners")
		}
	}
	return lo, hi, nil
}

func parseFloats(s string, fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, malformed(s, "number, found "+strconv.Quote(f))
		}
		out[i] = v
	}
	return out, nil
}

func parseTimes(lo, hi string) (time.Time, time.Time, error) {
	tmin, err := temporal.ParseTimestamp(lo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	tmax, err := temporal.ParseTimestamp(hi)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return tmin, tmax, nil
}

// ParseTBox reads TBOX((xmin, tmin), (xmax, tmax)). Either slot may be
// blank when the dimension is absent; TBOX() is the empty box.
func ParseTBox(s string) (TBox, error) {
	lit, err := parseBox(s)
	if err != nil {
		return TBox{}, err
	}
	if !strings.EqualFold(lit.Kind, "TBOX") || lit.Dims != "" || lit.SRID != nil {
		return TBox{}, malformed(s, "TBOX")
	}
	if len(lit.Tuples) == 0 {
		return TBox{}, nil
	}
	lo, hi, err := lit.corners(s, 2)
	if err != nil {
		return TBox{}, err
	}
	var opts []TBoxOption
	if lo[0] != "" {
		x, err := parseFloats(s, lo[0], hi[0])
		if err != nil {
			return TBox{}, err
		}
		opts = append(opts, WithValue(x[0], x[1]))
	}
	if lo[1] != "" {
		tmin, tmax, err := parseTimes(lo[1], hi[1])
		if err != nil {
			return TBox{}, err
		}
		opts = append(opts, WithPeriod(tmin, tmax))
	}
	return NewTBox(opts...)
}

// ParseSTBox reads the STBOX and GEODSTBOX forms with an optional SRID=n;
// prefix. The Z and T flags must match the non-blank fields.
func ParseSTBox(s string) (STBox, error) {
	lit, err := parseBox(s)
	if err != nil {
		return STBox{}, err
	}
	var opts []STBoxOption
	geodetic := false
	switch strings.ToUpper(lit.Kind) {
	case "GEODSTBOX":
		geodetic = true
		opts = append(opts, Geodetic())
	case "STBOX":
	default:
		return STBox{}, malformed(s, "STBOX or GEODSTBOX")
	}
	if lit.SRID != nil {
		srid, err := strconv.Atoi(*lit.SRID)
		if err != nil || srid < 0 {
			return STBox{}, malformed(s, "SRID integer")
		}
		opts = append(opts, WithSRID(srid))
	}

	dims := strings.ToUpper(lit.Dims)
	hasZ := strings.Contains(dims, "Z")
	hasT := strings.Contains(dims, "T")

	if len(lit.Tuples) == 0 {
		if dims != "" {
			return STBox{}, malformed(s, "corner tuples")
		}
		b := STBox{geodetic: geodetic}
		for _, opt := range opts {
			opt(&b)
		}
		return b, nil
	}

	// Geodetic boxes carry x, y and z, except the time-only form which
	// leaves two blank slots before the timestamp.
	width := 2
	if hasZ || geodetic {
		width = 3
	}
	if geodetic && hasT && !hasZ && lit.Tuples[0].width() == 3 {
		width = 2
	}
	n := width
	if hasT {
		n++
	}
	lo, hi, err := lit.corners(s, n)
	if err != nil {
		return STBox{}, err
	}

	spatial := lo[:width]
	for _, f := range spatial {
		if (f == "") != (spatial[0] == "") {
			return STBox{}, malformed(s, "all spatial fields or none")
		}
	}
	switch {
	case spatial[0] != "" && geodetic && width == 2:
		return STBox{}, malformed(s, "x, y and z for a geodetic box")
	case spatial[0] != "":
		c, err := parseFloats(s, append(append([]string{}, spatial...), hi[:width]...)...)
		if err != nil {
			return STBox{}, err
		}
		if width == 3 {
			opts = append(opts, WithXYZ(c[0], c[1], c[2], c[3], c[4], c[5]))
		} else {
			opts = append(opts, WithXY(c[0], c[1], c[2], c[3]))
		}
	case !hasT || width == 3:
		return STBox{}, malformed(s, "spatial fields")
	}

	if hasT {
		if lo[n-1] == "" {
			return STBox{}, malformed(s, "time fields")
		}
		tmin, tmax, err := parseTimes(lo[n-1], hi[n-1])
		if err != nil {
			return STBox{}, err
		}
		opts = append(opts, WithTime(tmin, tmax))
	}
	return NewSTBox(opts...)
}
