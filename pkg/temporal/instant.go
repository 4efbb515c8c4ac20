package temporal

import (
	"time"
)

// Instant is a single value at a single timestamp.
type Instant[V Base] struct {
	value V
	t     time.Time
}

// NewInstant builds an instant. WithSRID is reconciled with the SRID of a
// geometry value.
func NewInstant[V Base](value V, t time.Time, opts ...Option) (Instant[V], error) {
	o := applyOptions(opts)
	srid, err := ResolveSRID(o.srid, valueSRID(value))
	if err != nil {
		return Instant[V]{}, err
	}
	return Instant[V]{value: withValueSRID(value, srid), t: NormalizeTime(t)}, nil
}

func (i Instant[V]) Value() V { return i.value }
func (i Instant[V]) Timestamp() time.Time { return i.t }
func (i Instant[V]) Duration() Duration { return DurationInstant }
func (i Instant[V]) SRID() int { return valueSRID(i.value) }
func (i Instant[V]) Instants() []Instant[V] { return []Instant[V]{i} }
func (i Instant[V]) NumInstants() int { return 1 }
func (i Instant[V]) StartInstant() Instant[V] { return i }
func (i Instant[V]) EndInstant() Instant[V] { return i }

// Interpolation reports the default interpolation of the base kind.
func (i Instant[V]) Interpolation() Interpolation {
	return DefaultInterpolation(KindOf[V]())
}

func (i Instant[V]) InstantN(n int) (Instant[V], error) {
	if n != 0 {
		return Instant[V]{}, outOfRange(n, 1)
	}
	return i, nil
}

func (i Instant[V]) Timestamps() []time.Time { return []time.Time{i.t} }
func (i Instant[V]) NumTimestamps() int { return 1 }
func (i Instant[V]) StartTimestamp() time.Time { return i.t }
func (i Instant[V]) EndTimestamp() time.Time { return i.t }

func (i Instant[V]) TimestampN(n int) (time.Time, error) {
	return timestampN([]time.Time{i.t}, n)
}

func (i Instant[V]) Values() []Range[V] { return []Range[V]{valueRange(i.value)} }
func (i Instant[V]) MinValue() V { return i.value }
func (i Instant[V]) MaxValue() V { return i.value }

func (i Instant[V]) Period() Period { return PeriodAt(i.t) }

func (i Instant[V]) Time() PeriodSet {
	return PeriodSet{periods: []Period{PeriodAt(i.t)}}
}

func (i Instant[V]) Timespan() time.Duration { return 0 }

func (i Instant[V]) IntersectsTimestamp(t time.Time) bool {
	return i.t.Equal(t)
}

func (i Instant[V]) IntersectsPeriod(p Period) bool {
	return p.ContainsTimestamp(i.t)
}

func (i Instant[V]) IntersectsTimestampSet(ts TimestampSet) bool {
	return ts.ContainsTimestamp(i.t)
}

func (i Instant[V]) IntersectsPeriodSet(ps PeriodSet) bool {
	return ps.ContainsTimestamp(i.t)
}

// Shift returns the instant moved by d.
func (i Instant[V]) Shift(d time.Duration) Instant[V] {
	return Instant[V]{value: i.value, t: NormalizeTime(i.t.Add(d))}
}

// Compare orders instants by timestamp, then value.
func (i Instant[V]) Compare(o Instant[V]) int {
	if c := i.t.Compare(o.t); c != 0 {
		return c
	}
	return compareValues(i.value, o.value)
}

func (i Instant[V]) Equal(o Instant[V]) bool {
	return i.Compare(o) == 0
}
