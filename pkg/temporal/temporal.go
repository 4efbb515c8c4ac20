// Package temporal models values that vary over time and their canonical
// text literals.
//
// A temporal value is one of four durations (Instant, InstantSet, Sequence,
// SequenceSet) over one of five base domains (bool, int, float64, string,
// geom.Point). All values are immutable once constructed.
package temporal

import (
	"slices"
	"time"
)

// Duration identifies which of the four temporal variants a value is.
type Duration int

const (
	DurationInstant Duration = iota + 1
	DurationInstantSet
	DurationSequence
	DurationSequenceSet
)

func (d Duration) String() string {
	switch d {
	case DurationInstant:
		return "Instant"
	case DurationInstantSet:
		return "InstantSet"
	case DurationSequence:
		return "Sequence"
	case DurationSequenceSet:
		return "SequenceSet"
	}
	return "Unknown"
}

// Temporal is implemented by Instant, InstantSet, Sequence and SequenceSet.
type Temporal[V Base] interface {
	Duration() Duration
	Interpolation() Interpolation
	SRID() int

	Instants() []Instant[V]
	NumInstants() int
	StartInstant() Instant[V]
	EndInstant() Instant[V]
	InstantN(n int) (Instant[V], error)

	Timestamps() []time.Time
	NumTimestamps() int
	StartTimestamp() time.Time
	EndTimestamp() time.Time
	TimestampN(n int) (time.Time, error)

	// Values returns the ranges of values taken, in value order.
	Values() []Range[V]
	MinValue() V
	MaxValue() V

	// Period is the time envelope, ignoring gaps.
	Period() Period
	// Time is the exact time over which the value is defined.
	Time() PeriodSet
	Timespan() time.Duration

	IntersectsTimestamp(t time.Time) bool
	IntersectsPeriod(p Period) bool
	IntersectsTimestampSet(ts TimestampSet) bool
	IntersectsPeriodSet(ps PeriodSet) bool

	String() string
}

var (
	_ Temporal[int]     = Instant[int]{}
	_ Temporal[float64] = InstantSet[float64]{}
	_ Temporal[string]  = Sequence[string]{}
	_ Temporal[bool]    = SequenceSet[bool]{}
)

// Shift returns t moved in time by d, keeping its variant.
func Shift[V Base](t Temporal[V], d time.Duration) Temporal[V] {
	switch v := t.(type) {
	case Instant[V]:
		return v.Shift(d)
	case InstantSet[V]:
		return v.Shift(d)
	case Sequence[V]:
		return v.Shift(d)
	case SequenceSet[V]:
		return v.Shift(d)
	}
	return t
}

// Equal compares two temporal values structurally. Values of different
// durations are never equal.
func Equal[V Base](a, b Temporal[V]) bool {
	switch x := a.(type) {
	case Instant[V]:
		y, ok := b.(Instant[V])
		return ok && x.Equal(y)
	case InstantSet[V]:
		y, ok := b.(InstantSet[V])
		return ok && x.Equal(y)
	case Sequence[V]:
		y, ok := b.(Sequence[V])
		return ok && x.Equal(y)
	case SequenceSet[V]:
		y, ok := b.(SequenceSet[V])
		return ok && x.Equal(y)
	}
	return false
}

// instantList holds time-ordered instants and provides the accessors
// shared by the collection variants.
type instantList[V Base] struct {
	list []Instant[V]
}

func (l instantList[V]) Instants() []Instant[V] { return slices.Clone(l.list) }

func (l instantList[V]) NumInstants() int { return len(l.list) }

func (l instantList[V]) StartInstant() Instant[V] {
	if len(l.list) == 0 {
		return Instant[V]{}
	}
	return l.list[0]
}

func (l instantList[V]) EndInstant() Instant[V] {
	if len(l.list) == 0 {
		return Instant[V]{}
	}
	return l.list[len(l.list)-1]
}

// InstantN returns the n-th instant, counting from zero.
func (l instantList[V]) InstantN(n int) (Instant[V], error) {
	if n < 0 || n >= len(l.list) {
		return Instant[V]{}, outOfRange(n, len(l.list))
	}
	return l.list[n], nil
}

func (l instantList[V]) Timestamps() []time.Time {
	ts := make([]time.Time, len(l.list))
	for i, in := range l.list {
		ts[i] = in.t
	}
	return sortedTimestamps(ts)
}

func (l instantList[V]) NumTimestamps() int { return len(l.Timestamps()) }

func (l instantList[V]) StartTimestamp() time.Time { return l.StartInstant().t }

func (l instantList[V]) EndTimestamp() time.Time { return l.EndInstant().t }

func (l instantList[V]) TimestampN(n int) (time.Time, error) {
	return timestampN(l.Timestamps(), n)
}

func (l instantList[V]) MinValue() V {
	var out V
	for i, in := range l.list {
		if i == 0 {
			out = in.value
			continue
		}
		out = minValue(out, in.value)
	}
	return out
}

func (l instantList[V]) MaxValue() V {
	var out V
	for i, in := range l.list {
		if i == 0 {
			out = in.value
			continue
		}
		out = maxValue(out, in.value)
	}
	return out
}

// SRID is shared by every instant after construction.
func (l instantList[V]) SRID() int {
	return valueSRID(l.StartInstant().value)
}

func (l instantList[V]) shifted(d time.Duration) []Instant[V] {
	out := make([]Instant[V], len(l.list))
	for i, in := range l.list {
		out[i] = in.Shift(d)
	}
	return out
}

func (l instantList[V]) equal(o instantList[V]) bool {
	return slices.EqualFunc(l.list, o.list, Instant[V].Equal)
}

// sortRanges orders ranges and removes duplicates.
func sortRanges[V Base](ranges []Range[V]) []Range[V] {
	slices.SortFunc(ranges, Range[V].Compare)
	return slices.CompactFunc(ranges, Range[V].Equal)
}

func intersectsTimestampSet(defined PeriodSet, ts TimestampSet) bool {
	for _, t := range ts.timestamps {
		if defined.ContainsTimestamp(t) {
			return true
		}
	}
	return false
}
