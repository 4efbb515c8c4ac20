package temporal

import (
	"slices"
	"time"
)

// NormalizeTime converts t to UTC and truncates it to microsecond precision,
// the resolution of the literal format.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// sortedTimestamps normalizes, sorts and deduplicates ts into a new slice.
func sortedTimestamps(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		out[i] = NormalizeTime(t)
	}
	slices.SortFunc(out, time.Time.Compare)
	return slices.CompactFunc(out, time.Time.Equal)
}

func timestampN(ts []time.Time, n int) (time.Time, error) {
	if n < 0 || n >= len(ts) {
		return time.Time{}, outOfRange(n, len(ts))
	}
	return ts[n], nil
}
