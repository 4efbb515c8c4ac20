package temporal

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// Sequence is a run of instants with bound inclusivity and an interpolation.
type Sequence[V Base] struct {
	instantList[V]
	lowerInc, upperInc bool
	interp             Interpolation
}

// NewSequence builds a sequence from time-ordered instants. Adjacent exact
// duplicates collapse; the remaining timestamps must strictly increase.
func NewSequence[V Base](instants []Instant[V], lowerInc, upperInc bool, opts ...Option) (Sequence[V], error) {
	if len(instants) == 0 {
		return Sequence[V]{}, errors.Wrap(ErrEmptyDuration, "sequence")
	}
	o := applyOptions(opts)
	interp, err := resolveInterpolation(KindOf[V](), o.interp)
	if err != nil {
		return Sequence[V]{}, err
	}
	_, tagged, err := resolveInstantsSRID(o.srid, instants)
	if err != nil {
		return Sequence[V]{}, err
	}
	tagged = slices.CompactFunc(tagged, Instant[V].Equal)
	for i := 1; i < len(tagged); i++ {
		if !tagged[i-1].t.Before(tagged[i].t) {
			return Sequence[V]{}, errors.Wrapf(ErrNonMonotonicTime, "%s is not after %s", tagged[i], tagged[i-1])
		}
	}
	if len(tagged) == 1 && !(lowerInc && upperInc) {
		return Sequence[V]{}, errors.Wrap(ErrDegenerateBounds, "single-instant sequence")
	}
	return Sequence[V]{
		instantList: instantList[V]{list: slices.Clip(tagged)},
		lowerInc:    lowerInc,
		upperInc:    upperInc,
		interp:      interp,
	}, nil
}

func (s Sequence[V]) Duration() Duration { return DurationSequence }
func (s Sequence[V]) Interpolation() Interpolation { return s.interp }
func (s Sequence[V]) LowerInc() bool { return s.lowerInc }
func (s Sequence[V]) UpperInc() bool { return s.upperInc }

// WithInterpolation returns a copy of s using interp.
func (s Sequence[V]) WithInterpolation(interp Interpolation) (Sequence[V], error) {
	resolved, err := resolveInterpolation(KindOf[V](), interp)
	if err != nil {
		return Sequence[V]{}, err
	}
	s.interp = resolved
	return s, nil
}

// Values returns the inclusive range from the minimum to the maximum value.
func (s Sequence[V]) Values() []Range[V] {
	return []Range[V]{{lower: s.MinValue(), upper: s.MaxValue(), lowerInc: true, upperInc: true}}
}

func (s Sequence[V]) Period() Period {
	return Period{lower: s.StartTimestamp(), upper: s.EndTimestamp(), lowerInc: s.lowerInc, upperInc: s.upperInc}
}

func (s Sequence[V]) Time() PeriodSet {
	return PeriodSet{periods: []Period{s.Period()}}
}

func (s Sequence[V]) Timespan() time.Duration { return s.Period().Timespan() }

func (s Sequence[V]) IntersectsTimestamp(t time.Time) bool {
	return s.Period().ContainsTimestamp(t)
}

func (s Sequence[V]) IntersectsPeriod(p Period) bool {
	return s.Period().Overlaps(p)
}

func (s Sequence[V]) IntersectsTimestampSet(ts TimestampSet) bool {
	return intersectsTimestampSet(s.Time(), ts)
}

func (s Sequence[V]) IntersectsPeriodSet(ps PeriodSet) bool {
	return s.Time().Overlaps(ps)
}

func (s Sequence[V]) Shift(d time.Duration) Sequence[V] {
	s.instantList = instantList[V]{list: s.shifted(d)}
	return s
}

func (s Sequence[V]) Equal(o Sequence[V]) bool {
	return s.lowerInc == o.lowerInc &&
		s.upperInc == o.upperInc &&
		s.interp == o.interp &&
		s.equal(o.instantList)
}

// compare orders sequences by period, then instant by instant.
func (s Sequence[V]) compare(o Sequence[V]) int {
	if c := s.Period().Compare(o.Period()); c != 0 {
		return c
	}
	if c := slices.CompareFunc(s.list, o.list, Instant[V].Compare); c != 0 {
		return c
	}
	return int(s.interp) - int(o.interp)
}
