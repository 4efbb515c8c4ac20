package temporal

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// PeriodSet is an ordered union of disjoint, non-adjacent periods.
type PeriodSet struct {
	periods []Period
}

// NewPeriodSet sorts periods and merges those that overlap or touch
// at a bound covered by either side.
func NewPeriodSet(periods ...Period) (PeriodSet, error) {
	if len(periods) == 0 {
		return PeriodSet{}, errors.Wrap(ErrEmptyDuration, "period set")
	}
	return PeriodSet{periods: mergePeriods(periods)}, nil
}

func mergePeriods(periods []Period) []Period {
	sorted := slices.Clone(periods)
	slices.SortFunc(sorted, func(a, b Period) int {
		if c := compareLower(a, b); c != 0 {
			return c
		}
		return compareUpper(a, b)
	})

	merged := sorted[:1]
	for _, p := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Overlaps(p) || adjacent(*last, p) {
			if compareUpper(p, *last) > 0 {
				last.upper, last.upperInc = p.upper, p.upperInc
			}
			continue
		}
		merged = append(merged, p)
	}
	return slices.Clip(merged)
}

func adjacent(a, b Period) bool {
	return a.upper.Equal(b.lower) && (a.upperInc || b.lowerInc)
}

// Periods returns a copy of the member periods in time order.
func (ps PeriodSet) Periods() []Period { return slices.Clone(ps.periods) }

func (ps PeriodSet) NumPeriods() int { return len(ps.periods) }

func (ps PeriodSet) StartPeriod() Period {
	if len(ps.periods) == 0 {
		return Period{}
	}
	return ps.periods[0]
}

func (ps PeriodSet) EndPeriod() Period {
	if len(ps.periods) == 0 {
		return Period{}
	}
	return ps.periods[len(ps.periods)-1]
}

// PeriodN returns the n-th period, counting from zero.
func (ps PeriodSet) PeriodN(n int) (Period, error) {
	if n < 0 || n >= len(ps.periods) {
		return Period{}, outOfRange(n, len(ps.periods))
	}
	return ps.periods[n], nil
}

// Period returns the envelope from the first lower to the last upper bound.
func (ps PeriodSet) Period() Period {
	start, end := ps.StartPeriod(), ps.EndPeriod()
	return Period{lower: start.lower, upper: end.upper, lowerInc: start.lowerInc, upperInc: end.upperInc}
}

// Timestamps returns the distinct bounds of all periods.
func (ps PeriodSet) Timestamps() []time.Time {
	ts := make([]time.Time, 0, 2*len(ps.periods))
	for _, p := range ps.periods {
		ts = append(ts, p.lower, p.upper)
	}
	return sortedTimestamps(ts)
}

func (ps PeriodSet) NumTimestamps() int { return len(ps.Timestamps()) }

func (ps PeriodSet) StartTimestamp() time.Time { return ps.StartPeriod().lower }

func (ps PeriodSet) EndTimestamp() time.Time { return ps.EndPeriod().upper }

func (ps PeriodSet) TimestampN(n int) (time.Time, error) {
	return timestampN(ps.Timestamps(), n)
}

// Timespan sums the timespans of the member periods.
func (ps PeriodSet) Timespan() time.Duration {
	var d time.Duration
	for _, p := range ps.periods {
		d += p.Timespan()
	}
	return d
}

func (ps PeriodSet) Shift(d time.Duration) PeriodSet {
	out := make([]Period, len(ps.periods))
	for i, p := range ps.periods {
		out[i] = p.Shift(d)
	}
	return PeriodSet{periods: out}
}

func (ps PeriodSet) ContainsTimestamp(t time.Time) bool {
	for _, p := range ps.periods {
		if p.ContainsTimestamp(t) {
			return true
		}
	}
	return false
}

func (ps PeriodSet) OverlapsPeriod(o Period) bool {
	for _, p := range ps.periods {
		if p.Overlaps(o) {
			return true
		}
	}
	return false
}

func (ps PeriodSet) Overlaps(o PeriodSet) bool {
	for _, p := range o.periods {
		if ps.OverlapsPeriod(p) {
			return true
		}
	}
	return false
}

func (ps PeriodSet) Equal(o PeriodSet) bool {
	return slices.EqualFunc(ps.periods, o.periods, Period.Equal)
}
