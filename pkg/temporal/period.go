package temporal

import (
	"time"

	"github.com/pkg/errors"
)

// Period is a time interval with independently inclusive bounds.
type Period struct {
	lower, upper       time.Time
	lowerInc, upperInc bool
}

// NewPeriod validates and returns a period. Equal bounds must both be inclusive.
func NewPeriod(lower, upper time.Time, lowerInc, upperInc bool) (Period, error) {
	p := Period{
		lower:    NormalizeTime(lower),
		upper:    NormalizeTime(upper),
		lowerInc: lowerInc,
		upperInc: upperInc,
	}
	switch c := p.lower.Compare(p.upper); {
	case c > 0:
		return Period{}, errors.Wrapf(ErrInvalidBounds, "period %s", p)
	case c == 0 && !(lowerInc && upperInc):
		return Period{}, errors.Wrapf(ErrDegenerateBounds, "period %s", p)
	}
	return p, nil
}

// PeriodAt returns the degenerate period [t, t].
func PeriodAt(t time.Time) Period {
	t = NormalizeTime(t)
	return Period{lower: t, upper: t, lowerInc: true, upperInc: true}
}

func (p Period) Lower() time.Time { return p.lower }
func (p Period) Upper() time.Time { return p.upper }
func (p Period) LowerInc() bool { return p.lowerInc }
func (p Period) UpperInc() bool { return p.upperInc }

// Timespan is the distance between the bounds.
func (p Period) Timespan() time.Duration {
	return p.upper.Sub(p.lower)
}

// Shift moves both bounds by d.
func (p Period) Shift(d time.Duration) Period {
	p.lower = NormalizeTime(p.lower.Add(d))
	p.upper = NormalizeTime(p.upper.Add(d))
	return p
}

// ContainsTimestamp reports whether t lies within p.
func (p Period) ContainsTimestamp(t time.Time) bool {
	return (p.lower.Before(t) && t.Before(p.upper)) ||
		(p.lowerInc && p.lower.Equal(t)) ||
		(p.upperInc && p.upper.Equal(t))
}

// ContainsPeriod reports whether o lies within p.
func (p Period) ContainsPeriod(o Period) bool {
	return compareLower(p, o) <= 0 && compareUpper(o, p) <= 0
}

// Overlaps reports whether p and o share at least one instant.
func (p Period) Overlaps(o Period) bool {
	return boundsBefore(p.lower, p.lowerInc, o.upper, o.upperInc) &&
		boundsBefore(o.lower, o.lowerInc, p.upper, p.upperInc)
}

// Compare orders periods by lower bound, upper bound and inclusivity.
func (p Period) Compare(o Period) int {
	if c := p.lower.Compare(o.lower); c != 0 {
		return c
	}
	if c := p.upper.Compare(o.upper); c != 0 {
		return c
	}
	if c := compareFlag(p.lowerInc, o.lowerInc); c != 0 {
		return c
	}
	return compareFlag(p.upperInc, o.upperInc)
}

// Equal reports whether all four fields match.
func (p Period) Equal(o Period) bool {
	return p.Compare(o) == 0
}

// boundsBefore reports whether a lower bound lo and an upper bound hi
// leave a non-empty interval between them.
func boundsBefore(lo time.Time, loInc bool, hi time.Time, hiInc bool) bool {
	c := lo.Compare(hi)
	return c < 0 || (c == 0 && loInc && hiInc)
}

// compareLower orders lower bounds; an inclusive bound starts earlier.
func compareLower(a, b Period) int {
	if c := a.lower.Compare(b.lower); c != 0 {
		return c
	}
	return compareFlag(a.lowerInc, b.lowerInc)
}

// compareUpper orders upper bounds; an inclusive bound ends later.
func compareUpper(a, b Period) int {
	if c := a.upper.Compare(b.upper); c != 0 {
		return c
	}
	return -compareFlag(a.upperInc, b.upperInc)
}

// compareFlag sorts inclusive before exclusive.
func compareFlag(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}
