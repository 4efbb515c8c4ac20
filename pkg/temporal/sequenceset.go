package temporal

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// SequenceSet is a union of sequences that do not overlap in time and
// share one interpolation.
type SequenceSet[V Base] struct {
	instantList[V]
	sequences []Sequence[V]
	interp    Interpolation
}

// NewSequenceSet sorts sequences by time and collapses exact duplicates.
//
// WithInterpolation is propagated to members that use the default
// interpolation of the base kind. It fails with
// ErrIncompatibleInterpolationSet when members already use another
// non-default interpolation.
func NewSequenceSet[V Base](sequences []Sequence[V], opts ...Option) (SequenceSet[V], error) {
	if len(sequences) == 0 {
		return SequenceSet[V]{}, errors.Wrap(ErrEmptyDuration, "sequence set")
	}
	o := applyOptions(opts)

	kind := KindOf[V]()
	interp := sequences[0].interp
	for _, s := range sequences[1:] {
		if s.interp != interp {
			return SequenceSet[V]{}, errors.Wrapf(ErrIncompatibleInterpolationSet, "found %s and %s", interp, s.interp)
		}
	}
	if o.interp != 0 && o.interp != interp {
		if interp != DefaultInterpolation(kind) {
			return SequenceSet[V]{}, errors.Wrapf(ErrIncompatibleInterpolationSet, "requested %s, sequences use %s", o.interp, interp)
		}
		resolved, err := resolveInterpolation(kind, o.interp)
		if err != nil {
			return SequenceSet[V]{}, err
		}
		interp = resolved
	}

	var observed []int
	for _, s := range sequences {
		for _, in := range s.list {
			observed = append(observed, valueSRID(in.value))
		}
	}
	srid, err := ResolveSRID(o.srid, observed...)
	if err != nil {
		return SequenceSet[V]{}, err
	}

	members := make([]Sequence[V], len(sequences))
	for i, s := range sequences {
		_, tagged, err := resolveInstantsSRID(srid, s.list)
		if err != nil {
			return SequenceSet[V]{}, err
		}
		s.instantList = instantList[V]{list: tagged}
		s.interp = interp
		members[i] = s
	}
	slices.SortFunc(members, Sequence[V].compare)
	members = slices.CompactFunc(members, Sequence[V].Equal)
	for i := 1; i < len(members); i++ {
		if members[i-1].Period().Overlaps(members[i].Period()) {
			return SequenceSet[V]{}, errors.Wrapf(ErrNonMonotonicTime, "sequences %s and %s overlap", members[i-1], members[i])
		}
	}

	var union []Instant[V]
	for _, s := range members {
		union = append(union, s.list...)
	}
	slices.SortFunc(union, Instant[V].Compare)
	union = slices.CompactFunc(union, Instant[V].Equal)

	return SequenceSet[V]{
		instantList: instantList[V]{list: slices.Clip(union)},
		sequences:   slices.Clip(members),
		interp:      interp,
	}, nil
}

func (s SequenceSet[V]) Duration() Duration { return DurationSequenceSet }
func (s SequenceSet[V]) Interpolation() Interpolation { return s.interp }

func (s SequenceSet[V]) Sequences() []Sequence[V] { return slices.Clone(s.sequences) }
func (s SequenceSet[V]) NumSequences() int { return len(s.sequences) }

func (s SequenceSet[V]) StartSequence() Sequence[V] {
	if len(s.sequences) == 0 {
		return Sequence[V]{}
	}
	return s.sequences[0]
}

func (s SequenceSet[V]) EndSequence() Sequence[V] {
	if len(s.sequences) == 0 {
		return Sequence[V]{}
	}
	return s.sequences[len(s.sequences)-1]
}

// SequenceN returns the n-th sequence, counting from zero.
func (s SequenceSet[V]) SequenceN(n int) (Sequence[V], error) {
	if n < 0 || n >= len(s.sequences) {
		return Sequence[V]{}, outOfRange(n, len(s.sequences))
	}
	return s.sequences[n], nil
}

// Values returns the value range of every member, merged by equality.
func (s SequenceSet[V]) Values() []Range[V] {
	var ranges []Range[V]
	for _, seq := range s.sequences {
		ranges = append(ranges, seq.Values()...)
	}
	return sortRanges(ranges)
}

// Period spans from the start of the first sequence to the end of the last.
func (s SequenceSet[V]) Period() Period {
	start, end := s.StartSequence().Period(), s.EndSequence().Period()
	return Period{lower: start.lower, upper: end.upper, lowerInc: start.lowerInc, upperInc: end.upperInc}
}

func (s SequenceSet[V]) Time() PeriodSet {
	periods := make([]Period, len(s.sequences))
	for i, seq := range s.sequences {
		periods[i] = seq.Period()
	}
	return PeriodSet{periods: mergePeriods(periods)}
}

func (s SequenceSet[V]) Timespan() time.Duration { return s.Time().Timespan() }

func (s SequenceSet[V]) IntersectsTimestamp(t time.Time) bool {
	return s.Time().ContainsTimestamp(t)
}

func (s SequenceSet[V]) IntersectsPeriod(p Period) bool {
	return s.Time().OverlapsPeriod(p)
}

func (s SequenceSet[V]) IntersectsTimestampSet(ts TimestampSet) bool {
	return intersectsTimestampSet(s.Time(), ts)
}

func (s SequenceSet[V]) IntersectsPeriodSet(ps PeriodSet) bool {
	return s.Time().Overlaps(ps)
}

func (s SequenceSet[V]) Shift(d time.Duration) SequenceSet[V] {
	members := make([]Sequence[V], len(s.sequences))
	for i, seq := range s.sequences {
		members[i] = seq.Shift(d)
	}
	return SequenceSet[V]{
		instantList: instantList[V]{list: s.shifted(d)},
		sequences:   members,
		interp:      s.interp,
	}
}

func (s SequenceSet[V]) Equal(o SequenceSet[V]) bool {
	return s.interp == o.interp && slices.EqualFunc(s.sequences, o.sequences, Sequence[V].Equal)
}
