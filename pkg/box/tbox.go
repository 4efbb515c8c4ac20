package box

import (
	"math"
	"strings"
	"time"

	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

// TBox bounds a temporal number along its value dimension, its time
// dimension, or both. The zero value is the empty box.
type TBox struct {
	xmin, xmax float64
	tmin, tmax time.Time
	hasX, hasT bool
}

// TBoxOption sets one dimension of a TBox.
type TBoxOption func(*TBox)

// WithValue sets the value bounds.
func WithValue(xmin, xmax float64) TBoxOption {
	return func(b *TBox) {
		b.xmin, b.xmax, b.hasX = xmin, xmax, true
	}
}

// WithPeriod sets the time bounds.
func WithPeriod(tmin, tmax time.Time) TBoxOption {
	return func(b *TBox) {
		b.tmin, b.tmax = temporal.NormalizeTime(tmin), temporal.NormalizeTime(tmax)
		b.hasT = true
	}
}

// NewTBox builds a box from at least one dimension.
func NewTBox(opts ...TBoxOption) (TBox, error) {
	var b TBox
	for _, opt := range opts {
		opt(&b)
	}
	if !b.hasX && !b.hasT {
		return TBox{}, temporal.ErrEmptyBox
	}
	if b.hasX {
		if math.IsNaN(b.xmin) || math.IsNaN(b.xmax) {
			return TBox{}, temporal.ErrInvalidBounds
		}
		if err := checkFloats("value", b.xmin, b.xmax); err != nil {
			return TBox{}, err
		}
	}
	if b.hasT {
		if err := checkTimes(b.tmin, b.tmax); err != nil {
			return TBox{}, err
		}
	}
	return b, nil
}

// TBoxOf bounds a temporal number by its value extent and time envelope.
func TBoxOf[V int | float64](t temporal.Temporal[V]) TBox {
	p := t.Period()
	return TBox{
		xmin: float64(t.MinValue()),
		xmax: float64(t.MaxValue()),
		tmin: p.Lower(),
		tmax: p.Upper(),
		hasX: true,
		hasT: true,
	}
}

// TBoxFromPeriod returns a time-only box. Bound inclusivity is dropped.
func TBoxFromPeriod(p temporal.Period) TBox {
	return TBox{tmin: p.Lower(), tmax: p.Upper(), hasT: true}
}

// TBoxFromRange returns a value-only box. Bound inclusivity is dropped.
func TBoxFromRange[V int | float64](r temporal.Range[V]) TBox {
	return TBox{xmin: float64(r.Lower()), xmax: float64(r.Upper()), hasX: true}
}

func (b TBox) HasValue() bool { return b.hasX }
func (b TBox) HasTime() bool { return b.hasT }
func (b TBox) IsEmpty() bool { return !b.hasX && !b.hasT }
func (b TBox) XMin() float64 { return b.xmin }
func (b TBox) XMax() float64 { return b.xmax }
func (b TBox) TMin() time.Time { return b.tmin }
func (b TBox) TMax() time.Time { return b.tmax }

// Period returns the time bounds as an inclusive period.
func (b TBox) Period() (temporal.Period, bool) {
	if !b.hasT {
		return temporal.Period{}, false
	}
	p, err := temporal.NewPeriod(b.tmin, b.tmax, true, true)
	return p, err == nil
}

// Overlaps reports whether b and o intersect on every dimension they share.
// Boxes without a shared dimension do not overlap.
func (b TBox) Overlaps(o TBox) bool {
	shared := false
	if b.hasX && o.hasX {
		if !spanOverlaps(b.xmin, b.xmax, o.xmin, o.xmax) {
			return false
		}
		shared = true
	}
	if b.hasT && o.hasT {
		if !timeOverlaps(b.tmin, b.tmax, o.tmin, o.tmax) {
			return false
		}
		shared = true
	}
	return shared
}

// Contains reports whether every dimension of o lies inside b.
func (b TBox) Contains(o TBox) bool {
	if o.IsEmpty() {
		return false
	}
	if o.hasX && !(b.hasX && spanContains(b.xmin, b.xmax, o.xmin, o.xmax)) {
		return false
	}
	if o.hasT && !(b.hasT && timeContains(b.tmin, b.tmax, o.tmin, o.tmax)) {
		return false
	}
	return true
}

// Union returns the smallest box covering b and o. Both boxes must have
// the same dimensions unless one of them is empty.
func (b TBox) Union(o TBox) (TBox, error) {
	switch {
	case b.IsEmpty():
		return o, nil
	case o.IsEmpty():
		return b, nil
	case b.hasX != o.hasX || b.hasT != o.hasT:
		return TBox{}, ErrDimensionMismatch
	}
	u := b
	if u.hasX {
		u.xmin, u.xmax = math.Min(b.xmin, o.xmin), math.Max(b.xmax, o.xmax)
	}
	if u.hasT {
		u.tmin, u.tmax = earliest(b.tmin, o.tmin), latest(b.tmax, o.tmax)
	}
	return u, nil
}

func (b TBox) Equal(o TBox) bool {
	if b.hasX != o.hasX || b.hasT != o.hasT {
		return false
	}
	if b.hasX && (b.xmin != o.xmin || b.xmax != o.xmax) {
		return false
	}
	if b.hasT && (!b.tmin.Equal(o.tmin) || !b.tmax.Equal(o.tmax)) {
		return false
	}
	return true
}

// String renders TBOX((xmin, tmin), (xmax, tmax)); a missing dimension
// leaves its slot blank.
func (b TBox) String() string {
	if b.IsEmpty() {
		return "TBOX()"
	}
	var s strings.Builder
	s.WriteString("TBOX(")
	b.writeCorner(&s, b.xmin, b.tmin)
	s.WriteString(", ")
	b.writeCorner(&s, b.xmax, b.tmax)
	s.WriteByte(')')
	return s.String()
}

func (b TBox) writeCorner(s *strings.Builder, x float64, t time.Time) {
	s.WriteByte('(')
	if b.hasX {
		s.WriteString(temporal.FormatValue(x))
	}
	s.WriteByte(',')
	if b.hasT {
		s.WriteByte(' ')
		s.WriteString(temporal.FormatTimestamp(t))
	}
	s.WriteByte(')')
}
