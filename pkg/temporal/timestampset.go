package temporal

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// TimestampSet is an ordered set of distinct timestamps.
type TimestampSet struct {
	timestamps []time.Time
}

// NewTimestampSet sorts ts and collapses duplicates.
func NewTimestampSet(ts ...time.Time) (TimestampSet, error) {
	if len(ts) == 0 {
		return TimestampSet{}, errors.Wrap(ErrEmptyDuration, "timestamp set")
	}
	return TimestampSet{timestamps: sortedTimestamps(ts)}, nil
}

func (s TimestampSet) Timestamps() []time.Time { return slices.Clone(s.timestamps) }

func (s TimestampSet) NumTimestamps() int { return len(s.timestamps) }

func (s TimestampSet) StartTimestamp() time.Time {
	if len(s.timestamps) == 0 {
		return time.Time{}
	}
	return s.timestamps[0]
}

func (s TimestampSet) EndTimestamp() time.Time {
	if len(s.timestamps) == 0 {
		return time.Time{}
	}
	return s.timestamps[len(s.timestamps)-1]
}

func (s TimestampSet) TimestampN(n int) (time.Time, error) {
	return timestampN(s.timestamps, n)
}

// Period returns the inclusive envelope of the set.
func (s TimestampSet) Period() Period {
	return Period{lower: s.StartTimestamp(), upper: s.EndTimestamp(), lowerInc: true, upperInc: true}
}

// PeriodSet returns one degenerate period per timestamp.
func (s TimestampSet) PeriodSet() PeriodSet {
	periods := make([]Period, len(s.timestamps))
	for i, t := range s.timestamps {
		periods[i] = PeriodAt(t)
	}
	return PeriodSet{periods: periods}
}

func (s TimestampSet) NumPeriods() int { return len(s.timestamps) }

func (s TimestampSet) PeriodN(n int) (Period, error) {
	t, err := s.TimestampN(n)
	if err != nil {
		return Period{}, err
	}
	return PeriodAt(t), nil
}

// Timespan is always zero: a timestamp set covers no interval.
func (s TimestampSet) Timespan() time.Duration { return 0 }

func (s TimestampSet) Shift(d time.Duration) TimestampSet {
	out := make([]time.Time, len(s.timestamps))
	for i, t := range s.timestamps {
		out[i] = NormalizeTime(t.Add(d))
	}
	return TimestampSet{timestamps: out}
}

func (s TimestampSet) ContainsTimestamp(t time.Time) bool {
	_, found := slices.BinarySearchFunc(s.timestamps, NormalizeTime(t), time.Time.Compare)
	return found
}

func (s TimestampSet) Equal(o TimestampSet) bool {
	return slices.EqualFunc(s.timestamps, o.timestamps, time.Time.Equal)
}
