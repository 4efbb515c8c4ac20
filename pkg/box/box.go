// Package box provides bounding boxes for temporal values: TBox for
// temporal numbers and STBox for temporal points.
package box

import (
	"time"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

// ErrDimensionMismatch is returned when two boxes do not cover the same
// dimensions, or a box declares a dimension it does not carry.
var ErrDimensionMismatch = errors.New("box: dimensions do not match")

func checkFloats(name string, lo, hi float64) error {
	if lo > hi {
		return errors.Wrapf(temporal.ErrInvalidBounds, "%s: %v > %v", name, lo, hi)
	}
	return nil
}

func checkTimes(lo, hi time.Time) error {
	if lo.After(hi) {
		return errors.Wrapf(temporal.ErrInvalidBounds, "time: %s > %s",
			temporal.FormatTimestamp(lo), temporal.FormatTimestamp(hi))
	}
	return nil
}

func spanOverlaps(amin, amax, bmin, bmax float64) bool {
	return amin <= bmax && bmin <= amax
}

func spanContains(amin, amax, bmin, bmax float64) bool {
	return amin <= bmin && bmax <= amax
}

func timeOverlaps(amin, amax, bmin, bmax time.Time) bool {
	return !amin.After(bmax) && !bmin.After(amax)
}

func timeContains(amin, amax, bmin, bmax time.Time) bool {
	return !amin.After(bmin) && !bmax.After(amax)
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
