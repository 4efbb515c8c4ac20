package temporal

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// InstantSet is a set of instants at distinct timestamps.
type InstantSet[V Base] struct {
	instantList[V]
}

// NewInstantSet sorts instants by time and collapses exact duplicates.
// Two different values at the same timestamp fail with ErrNonMonotonicTime.
func NewInstantSet[V Base](instants []Instant[V], opts ...Option) (InstantSet[V], error) {
	if len(instants) == 0 {
		return InstantSet[V]{}, errors.Wrap(ErrEmptyDuration, "instant set")
	}
	o := applyOptions(opts)
	_, tagged, err := resolveInstantsSRID(o.srid, instants)
	if err != nil {
		return InstantSet[V]{}, err
	}
	slices.SortFunc(tagged, Instant[V].Compare)
	tagged = slices.CompactFunc(tagged, Instant[V].Equal)
	for i := 1; i < len(tagged); i++ {
		if tagged[i].t.Equal(tagged[i-1].t) {
			return InstantSet[V]{}, errors.Wrapf(ErrNonMonotonicTime, "instant set holds %s and %s", tagged[i-1], tagged[i])
		}
	}
	return InstantSet[V]{instantList[V]{list: slices.Clip(tagged)}}, nil
}

func (s InstantSet[V]) Duration() Duration { return DurationInstantSet }

// Interpolation reports the default interpolation of the base kind.
func (s InstantSet[V]) Interpolation() Interpolation {
	return DefaultInterpolation(KindOf[V]())
}

// Values returns one degenerate range per distinct value.
func (s InstantSet[V]) Values() []Range[V] {
	ranges := make([]Range[V], len(s.list))
	for i, in := range s.list {
		ranges[i] = valueRange(in.value)
	}
	return sortRanges(ranges)
}

// Period returns the inclusive envelope of the instants.
func (s InstantSet[V]) Period() Period {
	return Period{lower: s.StartTimestamp(), upper: s.EndTimestamp(), lowerInc: true, upperInc: true}
}

func (s InstantSet[V]) Time() PeriodSet {
	periods := make([]Period, len(s.list))
	for i, in := range s.list {
		periods[i] = PeriodAt(in.t)
	}
	return PeriodSet{periods: periods}
}

func (s InstantSet[V]) Timespan() time.Duration { return 0 }

func (s InstantSet[V]) IntersectsTimestamp(t time.Time) bool {
	return s.Time().ContainsTimestamp(t)
}

func (s InstantSet[V]) IntersectsPeriod(p Period) bool {
	return s.Time().OverlapsPeriod(p)
}

func (s InstantSet[V]) IntersectsTimestampSet(ts TimestampSet) bool {
	return intersectsTimestampSet(s.Time(), ts)
}

func (s InstantSet[V]) IntersectsPeriodSet(ps PeriodSet) bool {
	return s.Time().Overlaps(ps)
}

func (s InstantSet[V]) Shift(d time.Duration) InstantSet[V] {
	return InstantSet[V]{instantList[V]{list: s.shifted(d)}}
}

func (s InstantSet[V]) Equal(o InstantSet[V]) bool {
	return s.equal(o.instantList)
}
