package temporal

import "github.com/pkg/errors"

// Range is an interval over an ordered base domain.
type Range[V Base] struct {
	lower, upper       V
	lowerInc, upperInc bool
}

// NewRange returns the half-open range [lower, upper).
func NewRange[V Base](lower, upper V) (Range[V], error) {
	return NewRangeInc(lower, upper, true, false)
}

// NewRangeInc returns a range with explicit inclusivity flags.
func NewRangeInc[V Base](lower, upper V, lowerInc, upperInc bool) (Range[V], error) {
	r := Range[V]{lower: lower, upper: upper, lowerInc: lowerInc, upperInc: upperInc}
	switch c := compareValues(lower, upper); {
	case c > 0:
		return Range[V]{}, errors.Wrapf(ErrInvalidBounds, "range %s", r)
	case c == 0 && !(lowerInc && upperInc):
		return Range[V]{}, errors.Wrapf(ErrDegenerateBounds, "range %s", r)
	}
	return r, nil
}

func valueRange[V Base](v V) Range[V] {
	return Range[V]{lower: v, upper: v, lowerInc: true, upperInc: true}
}

func (r Range[V]) Lower() V { return r.lower }
func (r Range[V]) Upper() V { return r.upper }
func (r Range[V]) LowerInc() bool { return r.lowerInc }
func (r Range[V]) UpperInc() bool { return r.upperInc }

// Contains reports whether v lies within r.
func (r Range[V]) Contains(v V) bool {
	lo, hi := compareValues(r.lower, v), compareValues(v, r.upper)
	return (lo < 0 || (lo == 0 && r.lowerInc)) && (hi < 0 || (hi == 0 && r.upperInc))
}

// Overlaps reports whether r and o share at least one value.
func (r Range[V]) Overlaps(o Range[V]) bool {
	return valuesBefore(r.lower, r.lowerInc, o.upper, o.upperInc) &&
		valuesBefore(o.lower, o.lowerInc, r.upper, r.upperInc)
}

func valuesBefore[V Base](lo V, loInc bool, hi V, hiInc bool) bool {
	c := compareValues(lo, hi)
	return c < 0 || (c == 0 && loInc && hiInc)
}

// Compare orders ranges by lower bound, upper bound and inclusivity.
func (r Range[V]) Compare(o Range[V]) int {
	if c := compareValues(r.lower, o.lower); c != 0 {
		return c
	}
	if c := compareValues(r.upper, o.upper); c != 0 {
		return c
	}
	if c := compareFlag(r.lowerInc, o.lowerInc); c != 0 {
		return c
	}
	return compareFlag(r.upperInc, o.upperInc)
}

func (r Range[V]) Equal(o Range[V]) bool {
	return r.Compare(o) == 0
}
