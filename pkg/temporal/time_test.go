package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2011, time.January, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, lower, upper time.Time, lowerInc, upperInc bool) Period {
	t.Helper()
	p, err := NewPeriod(lower, upper, lowerInc, upperInc)
	require.NoError(t, err)
	return p
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "date only", input: "2011-01-01", want: "2011-01-01T00:00:00+0000"},
		{name: "space separator no seconds", input: "2011-01-01 10:30", want: "2011-01-01T10:30:00+0000"},
		{name: "T separator with hour offset", input: "2011-01-01T10:30:00+01", want: "2011-01-01T09:30:00+0000"},
		{name: "zulu with fraction", input: "2011-01-01T10:30:00.5Z", want: "2011-01-01T10:30:00.5+0000"},
		{name: "colon offset", input: "2011-01-01 10:30:00-05:30", want: "2011-01-01T16:00:00+0000"},
		{name: "compact offset", input: "2011-01-01 10:30:00+0530", want: "2011-01-01T05:00:00+0000"},
		{name: "canonical", input: "2011-01-01T00:00:00+0000", want: "2011-01-01T00:00:00+0000"},
		{name: "nanoseconds truncated", input: "2011-01-01 00:00:00.123456789", want: "2011-01-01T00:00:00.123456+0000"},
		{name: "leading whitespace", input: "  2011-01-01", want: "2011-01-01T00:00:00+0000"},
		{name: "five digit year", input: "10000-01-01 00:00:00+01", want: "9999-12-31T23:00:00+0000"},
		{name: "negative year", input: "-0044-03-15", want: "-0044-03-15T00:00:00+0000"},
		{name: "invalid offset", input: "2011-01-01 10:00+16", wantErr: true},
		{name: "invalid day", input: "2011-02-30", wantErr: true},
		{name: "invalid month", input: "2011-13-01", wantErr: true},
		{name: "short year", input: "11-01-01", wantErr: true},
		{name: "invalid hour", input: "2011-01-01 24:00", wantErr: true},
		{name: "trailing garbage", input: "2011-01-01 junk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedLiteral)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatTimestamp(got))
		})
	}
}

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod(day(1), day(2), true, false)
	require.NoError(t, err)
	assert.Equal(t, day(1), p.Lower())
	assert.Equal(t, day(2), p.Upper())
	assert.Equal(t, 24*time.Hour, p.Timespan())

	_, err = NewPeriod(day(2), day(1), true, true)
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = NewPeriod(day(1), day(1), true, false)
	assert.ErrorIs(t, err, ErrDegenerateBounds)

	instant, err := NewPeriod(day(1), day(1), true, true)
	require.NoError(t, err)
	assert.True(t, instant.Equal(PeriodAt(day(1))))
}

func TestPeriodOverlapsAndContains(t *testing.T) {
	a := mustPeriod(t, day(1), day(3), true, false)

	tests := []struct {
		name  string
		other Period
		want  bool
	}{
		{name: "inside", other: mustPeriod(t, day(2), day(2), true, true), want: true},
		{name: "touching excluded upper", other: mustPeriod(t, day(3), day(4), true, true), want: false},
		{name: "touching included lower", other: mustPeriod(t, day(0), day(1), false, true), want: true},
		{name: "touching both excluded", other: mustPeriod(t, day(0), day(1), false, false), want: false},
		{name: "disjoint", other: mustPeriod(t, day(5), day(6), true, true), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(a))
		})
	}

	assert.True(t, a.ContainsTimestamp(day(1)))
	assert.False(t, a.ContainsTimestamp(day(3)))
	assert.True(t, a.ContainsPeriod(mustPeriod(t, day(1), day(2), false, true)))
	assert.False(t, a.ContainsPeriod(mustPeriod(t, day(2), day(3), true, true)))
}

func TestPeriodSetMergesOverlapping(t *testing.T) {
	ps, err := NewPeriodSet(
		mustPeriod(t, day(2), day(4), true, true),
		mustPeriod(t, day(1), day(3), true, false),
	)
	require.NoError(t, err)
	require.Equal(t, 1, ps.NumPeriods())

	envelope := ps.Period()
	assert.Equal(t, day(1), envelope.Lower())
	assert.Equal(t, day(4), envelope.Upper())
	assert.True(t, envelope.LowerInc())
	assert.True(t, envelope.UpperInc())
	assert.Equal(t, "{[2011-01-01T00:00:00+0000, 2011-01-04T00:00:00+0000]}", ps.String())
}

func TestPeriodSetAdjacency(t *testing.T) {
	merged, err := NewPeriodSet(
		mustPeriod(t, day(1), day(2), true, false),
		mustPeriod(t, day(2), day(3), true, false),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, merged.NumPeriods())

	apart, err := NewPeriodSet(
		mustPeriod(t, day(2), day(3), false, false),
		mustPeriod(t, day(1), day(2), false, false),
	)
	require.NoError(t, err)
	require.Equal(t, 2, apart.NumPeriods())
	assert.Equal(t, day(1), apart.StartPeriod().Lower())
	assert.Equal(t, day(3), apart.EndPeriod().Upper())
	assert.Equal(t, 48*time.Hour, apart.Timespan())
	assert.Equal(t, 3, apart.NumTimestamps())
	assert.False(t, apart.ContainsTimestamp(day(2)))

	second, err := apart.PeriodN(1)
	require.NoError(t, err)
	assert.Equal(t, day(2), second.Lower())
	_, err = apart.PeriodN(2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewPeriodSet()
	assert.ErrorIs(t, err, ErrEmptyDuration)
}

func TestTimestampSet(t *testing.T) {
	ts, err := NewTimestampSet(day(3), day(1), day(3), day(2))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(1), day(2), day(3)}, ts.Timestamps())
	assert.True(t, ts.ContainsTimestamp(day(2)))
	assert.False(t, ts.ContainsTimestamp(day(4)))

	ps := ts.PeriodSet()
	assert.Equal(t, 3, ps.NumPeriods())
	assert.True(t, ps.StartPeriod().Equal(PeriodAt(day(1))))

	shifted := ts.Shift(time.Hour)
	assert.Equal(t, "{2011-01-01T01:00:00+0000, 2011-01-02T01:00:00+0000, 2011-01-03T01:00:00+0000}", shifted.String())

	_, err = NewTimestampSet()
	assert.ErrorIs(t, err, ErrEmptyDuration)
}

func TestParseTimePrimitives(t *testing.T) {
	p, err := ParsePeriod("(2011-01-01, 2011-01-02 12:00]")
	require.NoError(t, err)
	assert.Equal(t, "(2011-01-01T00:00:00+0000, 2011-01-02T12:00:00+0000]", p.String())

	_, err = ParsePeriod("[2011-01-02, 2011-01-01]")
	assert.ErrorIs(t, err, ErrInvalidBounds)
	_, err = ParsePeriod("(2011-01-01, 2011-01-01]")
	assert.ErrorIs(t, err, ErrDegenerateBounds)
	_, err = ParsePeriod("[2011-01-01; 2011-01-02]")
	assert.ErrorIs(t, err, ErrMalformedLiteral)

	ps, err := ParsePeriodSet("{[2011-01-01, 2011-01-03), [2011-01-02, 2011-01-04]}")
	require.NoError(t, err)
	assert.Equal(t, "{[2011-01-01T00:00:00+0000, 2011-01-04T00:00:00+0000]}", ps.String())

	ts, err := ParseTimestampSet("{2011-01-02, 2011-01-01, 2011-01-02}")
	require.NoError(t, err)
	assert.Equal(t, 2, ts.NumTimestamps())
	assert.Equal(t, "{2011-01-01T00:00:00+0000, 2011-01-02T00:00:00+0000}", ts.String())
}
