package box

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gogeom "github.com/twpayne/go-geom"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

func day(d int) time.Time {
	return time.Date(2011, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestTBoxString(t *testing.T) {
	tests := []struct {
		name string
		opts []TBoxOption
		want string
	}{
		{
			name: "value and time",
			opts: []TBoxOption{WithValue(1, 3.5), WithPeriod(day(1), day(2))},
			want: "TBOX((1, 2011-01-01T00:00:00+0000), (3.5, 2011-01-02T00:00:00+0000))",
		},
		{
			name: "value only",
			opts: []TBoxOption{WithValue(-2, 7)},
			want: "TBOX((-2,), (7,))",
		},
		{
			name: "unbounded value",
			opts: []TBoxOption{WithValue(math.Inf(-1), math.Inf(1))},
			want: "TBOX((-Inf,), (+Inf,))",
		},
		{
			name: "far future period",
			opts: []TBoxOption{WithValue(1, 2), WithPeriod(day(1), time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC))},
			want: "TBOX((1, 2011-01-01T00:00:00+0000), (2, 10000-01-01T00:00:00+0000))",
		},
		{
			name: "time only",
			opts: []TBoxOption{WithPeriod(day(1), day(3))},
			want: "TBOX((, 2011-01-01T00:00:00+0000), (, 2011-01-03T00:00:00+0000))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewTBox(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.String())

			parsed, err := ParseTBox(tt.want)
			require.NoError(t, err)
			assert.True(t, b.Equal(parsed), "got %s", parsed)
		})
	}

	assert.Equal(t, "TBOX()", TBox{}.String())
	empty, err := ParseTBox("tbox()")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestNewTBoxErrors(t *testing.T) {
	_, err := NewTBox()
	assert.ErrorIs(t, err, temporal.ErrEmptyBox)

	_, err = NewTBox(WithValue(3, 1))
	assert.ErrorIs(t, err, temporal.ErrInvalidBounds)

	_, err = NewTBox(WithPeriod(day(2), day(1)))
	assert.ErrorIs(t, err, temporal.ErrInvalidBounds)
}

func TestTBoxOf(t *testing.T) {
	seq, err := temporal.ParseSequence[float64]("[3@2011-01-01, 1.5@2011-01-02, 2@2011-01-04)")
	require.NoError(t, err)

	b := TBoxOf[float64](seq)
	assert.Equal(t, 1.5, b.XMin())
	assert.Equal(t, 3.0, b.XMax())
	assert.Equal(t, day(1), b.TMin())
	assert.Equal(t, day(4), b.TMax())

	p, ok := b.Period()
	require.True(t, ok)
	assert.Equal(t, 72*time.Hour, p.Timespan())

	r, err := temporal.NewRange(1, 4)
	require.NoError(t, err)
	assert.Equal(t, "TBOX((1,), (4,))", TBoxFromRange(r).String())

	period, err := temporal.NewPeriod(day(1), day(2), true, false)
	require.NoError(t, err)
	assert.True(t, TBoxFromPeriod(period).HasTime())
	assert.False(t, TBoxFromPeriod(period).HasValue())
}

func TestTBoxTopology(t *testing.T) {
	a, err := NewTBox(WithValue(0, 10), WithPeriod(day(1), day(5)))
	require.NoError(t, err)
	inner, err := NewTBox(WithValue(2, 3), WithPeriod(day(2), day(3)))
	require.NoError(t, err)
	later, err := NewTBox(WithValue(2, 3), WithPeriod(day(6), day(7)))
	require.NoError(t, err)
	valueOnly, err := NewTBox(WithValue(9, 12))
	require.NoError(t, err)

	assert.True(t, a.Overlaps(inner))
	assert.True(t, a.Contains(inner))
	assert.False(t, inner.Contains(a))
	assert.False(t, a.Overlaps(later))
	assert.True(t, a.Overlaps(valueOnly))
	assert.False(t, a.Contains(valueOnly))
	assert.False(t, a.Overlaps(TBox{}))

	u, err := a.Union(later)
	require.NoError(t, err)
	assert.Equal(t, "TBOX((0, 2011-01-01T00:00:00+0000), (10, 2011-01-07T00:00:00+0000))", u.String())

	_, err = a.Union(valueOnly)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	same, err := TBox{}.Union(a)
	require.NoError(t, err)
	assert.True(t, same.Equal(a))
}

func TestSTBoxString(t *testing.T) {
	tests := []struct {
		name string
		opts []STBoxOption
		want string
	}{
		{
			name: "planar",
			opts: []STBoxOption{WithXY(1, 2, 3, 4)},
			want: "STBOX((1, 2), (3, 4))",
		},
		{
			name: "planar with time and SRID",
			opts: []STBoxOption{WithXY(1, 2, 3, 4), WithTime(day(1), day(2)), WithSRID(5676)},
			want: "SRID=5676;STBOX T((1, 2, 2011-01-01T00:00:00+0000), (3, 4, 2011-01-02T00:00:00+0000))",
		},
		{
			name: "three dimensional with time",
			opts: []STBoxOption{WithXYZ(1, 2, 3, 4, 5, 6), WithTime(day(1), day(2))},
			want: "STBOX ZT((1, 2, 3, 2011-01-01T00:00:00+0000), (4, 5, 6, 2011-01-02T00:00:00+0000))",
		},
		{
			name: "three dimensional",
			opts: []STBoxOption{WithXYZ(1, 2, 3, 4, 5, 6)},
			want: "STBOX Z((1, 2, 3), (4, 5, 6))",
		},
		{
			name: "time only",
			opts: []STBoxOption{WithTime(day(1), day(2))},
			want: "STBOX T((, , 2011-01-01T00:00:00+0000), (, , 2011-01-02T00:00:00+0000))",
		},
		{
			name: "geodetic time only with SRID",
			opts: []STBoxOption{Geodetic(), WithSRID(4326), WithTime(day(1), day(2))},
			want: "SRID=4326;GEODSTBOX T((, , 2011-01-01T00:00:00+0000), (, , 2011-01-02T00:00:00+0000))",
		},
		{
			name: "geodetic spatial",
			opts: []STBoxOption{Geodetic(), WithXYZ(1, 2, 3, 4, 5, 6)},
			want: "GEODSTBOX((1, 2, 3), (4, 5, 6))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewSTBox(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.String())

			parsed, err := ParseSTBox(tt.want)
			require.NoError(t, err)
			assert.True(t, b.Equal(parsed), "got %s", parsed)
			assert.Equal(t, tt.want, parsed.String())
		})
	}

	assert.Equal(t, "STBOX()", STBox{}.String())
}

func TestSTBoxGeodeticDefaults(t *testing.T) {
	implicit, err := NewSTBox(Geodetic(), WithTime(day(1), day(2)))
	require.NoError(t, err)
	explicit, err := NewSTBox(Geodetic(), WithSRID(4326), WithTime(day(1), day(2)))
	require.NoError(t, err)

	assert.Equal(t, geom.DefaultGeodeticSRID, implicit.SRID())
	assert.Equal(t, geom.DefaultGeodeticSRID, explicit.SRID())
	assert.Equal(t, "GEODSTBOX T((, , 2011-01-01T00:00:00+0000), (, , 2011-01-02T00:00:00+0000))", implicit.String())
	assert.NotEqual(t, implicit.String(), explicit.String())
	assert.False(t, implicit.Equal(explicit))
	assert.True(t, implicit.Overlaps(explicit))
	assert.True(t, implicit.Contains(explicit))

	reparsed, err := ParseSTBox(explicit.String())
	require.NoError(t, err)
	assert.True(t, explicit.Equal(reparsed))
	assert.False(t, implicit.Equal(reparsed))

	_, err = NewSTBox(Geodetic(), WithXY(0, 0, 1, 1))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewSTBox()
	assert.ErrorIs(t, err, temporal.ErrEmptyBox)

	_, err = NewSTBox(WithXY(3, 0, 1, 1))
	assert.ErrorIs(t, err, temporal.ErrInvalidBounds)
}

func TestSTBoxOf(t *testing.T) {
	seq, err := temporal.ParseSequence[geom.Point]("SRID=5676;[POINT(1 5)@2011-01-01, POINT(3 2)@2011-01-03]")
	require.NoError(t, err)

	b, err := STBoxOf(seq)
	require.NoError(t, err)
	assert.Equal(t, "SRID=5676;STBOX T((1, 2, 2011-01-01T00:00:00+0000), (3, 5, 2011-01-03T00:00:00+0000))", b.String())

	_, err = STBoxOf(seq, WithSRID(4326))
	require.Error(t, err)
	assert.ErrorIs(t, err, temporal.ErrSRIDConflict)
	var conflict *temporal.SRIDConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 4326, conflict.Given)
	assert.Equal(t, 5676, conflict.Contained)

	flat, err := temporal.ParseInstant[geom.Point]("POINT(1 1)@2011-01-01")
	require.NoError(t, err)
	_, err = STBoxOf(flat, Geodetic())
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	inst, err := temporal.ParseInstant[geom.Point]("POINT Z (1 1 1)@2011-01-01")
	require.NoError(t, err)
	geo, err := STBoxOf(inst, Geodetic())
	require.NoError(t, err)
	assert.Equal(t, "GEODSTBOX T((1, 1, 1, 2011-01-01T00:00:00+0000), (1, 1, 1, 2011-01-01T00:00:00+0000))", geo.String())
}

func TestSTBoxFromGeometry(t *testing.T) {
	line := gogeom.NewLineStringFlat(gogeom.XY, []float64{0, 0, 2, 1, -1, 3}).SetSRID(4326)
	b, err := STBoxFromGeometry(line)
	require.NoError(t, err)
	assert.Equal(t, "SRID=4326;STBOX((-1, 0), (2, 3))", b.String())

	poly, ok := b.Geometry().(*gogeom.Polygon)
	require.True(t, ok)
	assert.Equal(t, 4326, poly.SRID())
	assert.Equal(t, 2.0, b.Geometry().Bounds().Max(0))

	_, err = STBoxFromGeometry(line, WithSRID(3857))
	assert.ErrorIs(t, err, temporal.ErrSRIDConflict)

	_, err = STBoxFromGeometry(gogeom.NewLineString(gogeom.XY))
	assert.ErrorIs(t, err, temporal.ErrEmptyBox)
}

func TestSTBoxTopology(t *testing.T) {
	a, err := NewSTBox(WithXY(0, 0, 10, 10), WithTime(day(1), day(5)))
	require.NoError(t, err)
	b, err := NewSTBox(WithXY(5, 5, 15, 15), WithTime(day(4), day(9)))
	require.NoError(t, err)
	inner, err := NewSTBox(WithXY(1, 1, 2, 2))
	require.NoError(t, err)
	projected, err := NewSTBox(WithXY(0, 0, 10, 10), WithSRID(3857))
	require.NoError(t, err)

	assert.True(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(inner))
	assert.True(t, a.Contains(inner))
	assert.False(t, a.Contains(b))
	assert.False(t, a.Overlaps(projected))

	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, "STBOX T((0, 0, 2011-01-01T00:00:00+0000), (15, 15, 2011-01-09T00:00:00+0000))", u.String())

	_, err = a.Union(inner)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	other, err := NewSTBox(WithXY(0, 0, 1, 1), WithSRID(4326))
	require.NoError(t, err)
	_, err = projected.Union(other)
	assert.ErrorIs(t, err, temporal.ErrSRIDConflict)
}

func TestParseBoxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parse func(string) error
	}{
		{name: "unknown keyword", input: "BOX((1,), (2,))", parse: parseTBoxErr},
		{name: "tbox with stbox keyword", input: "STBOX((1, 2), (3, 4))", parse: parseTBoxErr},
		{name: "one corner", input: "TBOX((1,))", parse: parseTBoxErr},
		{name: "blank mismatch", input: "TBOX((1,), (, 2011-01-01))", parse: parseTBoxErr},
		{name: "z flag without z", input: "STBOX Z((1, 2), (3, 4))", parse: parseSTBoxErr},
		{name: "partial spatial", input: "STBOX T((1, , 2011-01-01), (3, , 2011-01-02))", parse: parseSTBoxErr},
		{name: "no dimensions", input: "STBOX((, ), (, ))", parse: parseSTBoxErr},
		{name: "unbalanced", input: "STBOX((1, 2), (3, 4)", parse: parseSTBoxErr},
		{name: "bad SRID", input: "SRID=x;STBOX((1, 2), (3, 4))", parse: parseSTBoxErr},
		{name: "geodetic without z", input: "GEODSTBOX T((1, 2, 2011-01-01), (3, 4, 2011-01-02))", parse: parseSTBoxErr},
		{name: "geodetic time only with z slot", input: "GEODSTBOX T((, , , 2011-01-01), (, , , 2011-01-02))", parse: parseSTBoxErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.parse(tt.input), temporal.ErrMalformedLiteral)
		})
	}

	_, err := ParseTBox("TBOX((3,), (1,))")
	assert.ErrorIs(t, err, temporal.ErrInvalidBounds)
}

func TestParseSTBoxCaseInsensitive(t *testing.T) {
	b, err := ParseSTBox("srid=4326;geodstbox t((, , 2011-01-01), (, , 2011-01-02 12:00))")
	require.NoError(t, err)
	assert.True(t, b.IsGeodetic())
	assert.True(t, b.HasT())
	assert.False(t, b.HasXY())
	assert.Equal(t, 4326, b.SRID())
	assert.Equal(t, day(2).Add(12*time.Hour), b.TMax())
}

func parseTBoxErr(s string) error {
	_, err := ParseTBox(s)
	return err
}

func parseSTBoxErr(s string) error {
	_, err := ParseSTBox(s)
	return err
}
