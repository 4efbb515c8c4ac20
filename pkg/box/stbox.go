package box

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

// STBox bounds a temporal point in space, time, or both. Geodetic boxes
// always carry a Z dimension and default to SRID 4326. The zero value is
// the empty box.
type STBox struct {
	xmin, ymin, zmin float64
	xmax, ymax, zmax float64
	tmin, tmax       time.Time
	hasXY, hasZ      bool
	hasT             bool
	srid             int
	geodetic         bool
}

// STBoxOption configures an STBox.
type STBoxOption func(*STBox)

// WithXY sets planar spatial bounds.
func WithXY(xmin, ymin, xmax, ymax float64) STBoxOption {
	return func(b *STBox) {
		b.xmin, b.ymin, b.xmax, b.ymax = xmin, ymin, xmax, ymax
		b.hasXY = true
	}
}

// WithXYZ sets three-dimensional spatial bounds.
func WithXYZ(xmin, ymin, zmin, xmax, ymax, zmax float64) STBoxOption {
	return func(b *STBox) {
		WithXY(xmin, ymin, xmax, ymax)(b)
		b.zmin, b.zmax, b.hasZ = zmin, zmax, true
	}
}

// WithTime sets the time bounds.
func WithTime(tmin, tmax time.Time) STBoxOption {
	return func(b *STBox) {
		b.tmin, b.tmax = temporal.NormalizeTime(tmin), temporal.NormalizeTime(tmax)
		b.hasT = true
	}
}

// WithSRID sets an explicit spatial reference.
func WithSRID(srid int) STBoxOption {
	return func(b *STBox) { b.srid = srid }
}

// Geodetic marks the box as geodetic.
func Geodetic() STBoxOption {
	return func(b *STBox) { b.geodetic = true }
}

// NewSTBox builds a box from at least one of the spatial and time
// dimensions.
func NewSTBox(opts ...STBoxOption) (STBox, error) {
	var b STBox
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.validate(); err != nil {
		return STBox{}, err
	}
	return b, nil
}

func (b STBox) validate() error {
	if !b.hasXY && !b.hasT {
		return temporal.ErrEmptyBox
	}
	if b.srid < 0 {
		return errors.Wrapf(geom.ErrUnsupportedGeometry, "negative SRID %d", b.srid)
	}
	if b.hasXY {
		if b.geodetic && !b.hasZ {
			return errors.Wrap(ErrDimensionMismatch, "geodetic box needs Z bounds")
		}
		for _, c := range []float64{b.xmin, b.ymin, b.zmin, b.xmax, b.ymax, b.zmax} {
			if math.IsNaN(c) {
				return temporal.ErrInvalidBounds
			}
		}
		if err := checkFloats("x", b.xmin, b.xmax); err != nil {
			return err
		}
		if err := checkFloats("y", b.ymin, b.ymax); err != nil {
			return err
		}
		if err := checkFloats("z", b.zmin, b.zmax); err != nil {
			return err
		}
	}
	if b.hasT {
		return checkTimes(b.tmin, b.tmax)
	}
	return nil
}

// STBoxOf bounds a temporal point by the extent of its positions and its
// time envelope. Options may add an explicit SRID or mark the box
// geodetic; an explicit SRID that contradicts the points fails with
// temporal.ErrSRIDConflict.
func STBoxOf(t temporal.Temporal[geom.Point], opts ...STBoxOption) (STBox, error) {
	var b STBox
	for _, opt := range opts {
		opt(&b)
	}
	srid, err := geom.ResolveSRID(b.srid, t.SRID())
	if err != nil {
		return STBox{}, err
	}
	b.srid = srid

	instants := t.Instants()
	points := make([]geom.Point, len(instants))
	for i, in := range instants {
		points[i] = in.Value()
	}
	b.setSpatial(geom.Bounds(points))

	p := t.Period()
	b.tmin, b.tmax, b.hasT = p.Lower(), p.Upper(), true
	if err := b.validate(); err != nil {
		return STBox{}, err
	}
	return b, nil
}

// STBoxFromGeometry bounds any go-geom geometry. The geometry SRID is
// resolved against an explicit WithSRID option.
func STBoxFromGeometry(g gogeom.T, opts ...STBoxOption) (STBox, error) {
	if g == nil || g.Empty() {
		return STBox{}, temporal.ErrEmptyBox
	}
	var b STBox
	for _, opt := range opts {
		opt(&b)
	}
	srid, err := geom.ResolveSRID(b.srid, g.SRID())
	if err != nil {
		return STBox{}, err
	}
	b.srid = srid
	b.setSpatial(g.Bounds())
	if err := b.validate(); err != nil {
		return STBox{}, err
	}
	return b, nil
}

func (b *STBox) setSpatial(bounds *gogeom.Bounds) {
	if bounds == nil || bounds.IsEmpty() {
		return
	}
	b.xmin, b.ymin = bounds.Min(0), bounds.Min(1)
	b.xmax, b.ymax = bounds.Max(0), bounds.Max(1)
	b.hasXY = true
	if z := bounds.Layout().ZIndex(); z >= 0 {
		b.zmin, b.zmax, b.hasZ = bounds.Min(z), bounds.Max(z), true
	}
}

func (b STBox) HasXY() bool { return b.hasXY }
func (b STBox) HasZ() bool { return b.hasZ }
func (b STBox) HasT() bool { return b.hasT }
func (b STBox) IsGeodetic() bool { return b.geodetic }
func (b STBox) IsEmpty() bool { return !b.hasXY && !b.hasT }
func (b STBox) XMin() float64 { return b.xmin }
func (b STBox) YMin() float64 { return b.ymin }
func (b STBox) ZMin() float64 { return b.zmin }
func (b STBox) XMax() float64 { return b.xmax }
func (b STBox) YMax() float64 { return b.ymax }
func (b STBox) ZMax() float64 { return b.zmax }
func (b STBox) TMin() time.Time { return b.tmin }
func (b STBox) TMax() time.Time { return b.tmax }

// SRID returns the spatial reference, defaulting geodetic boxes to 4326.
func (b STBox) SRID() int {
	if b.srid == 0 && b.geodetic {
		return geom.DefaultGeodeticSRID
	}
	return b.srid
}

// Geometry returns the spatial extent as a go-geom polygon in the XY
// plane, or nil for a time-only box.
func (b STBox) Geometry() gogeom.T {
	if !b.hasXY {
		return nil
	}
	ring := []gogeom.Coord{
		{b.xmin, b.ymin}, {b.xmax, b.ymin}, {b.xmax, b.ymax}, {b.xmin, b.ymax}, {b.xmin, b.ymin},
	}
	return gogeom.NewPolygon(gogeom.XY).MustSetCoords([][]gogeom.Coord{ring}).SetSRID(b.SRID())
}

func (b STBox) sameSpace(o STBox) bool {
	return b.geodetic == o.geodetic && b.SRID() == o.SRID()
}

// Overlaps reports whether b and o intersect on every dimension they
// share. Boxes in different spatial references never overlap.
func (b STBox) Overlaps(o STBox) bool {
	if !b.sameSpace(o) {
		return false
	}
	shared := false
	if b.hasXY && o.hasXY {
		if !spanOverlaps(b.xmin, b.xmax, o.xmin, o.xmax) || !spanOverlaps(b.ymin, b.ymax, o.ymin, o.ymax) {
			return false
		}
		if b.hasZ && o.hasZ && !spanOverlaps(b.zmin, b.zmax, o.zmin, o.zmax) {
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
func (b STBox) Contains(o STBox) bool {
	if o.IsEmpty() || !b.sameSpace(o) {
		return false
	}
	if o.hasXY {
		if !b.hasXY || !spanContains(b.xmin, b.xmax, o.xmin, o.xmax) || !spanContains(b.ymin, b.ymax, o.ymin, o.ymax) {
			return false
		}
		if o.hasZ && !(b.hasZ && spanContains(b.zmin, b.zmax, o.zmin, o.zmax)) {
			return false
		}
	}
	if o.hasT && !(b.hasT && timeContains(b.tmin, b.tmax, o.tmin, o.tmax)) {
		return false
	}
	return true
}

// Union returns the smallest box covering b and o.
func (b STBox) Union(o STBox) (STBox, error) {
	switch {
	case b.IsEmpty():
		return o, nil
	case o.IsEmpty():
		return b, nil
	case b.hasXY != o.hasXY || b.hasZ != o.hasZ || b.hasT != o.hasT || b.geodetic != o.geodetic:
		return STBox{}, ErrDimensionMismatch
	}
	srid, err := geom.ResolveSRID(b.srid, o.srid)
	if err != nil {
		return STBox{}, err
	}
	u := b
	u.srid = srid
	if u.hasXY {
		u.xmin, u.xmax = math.Min(b.xmin, o.xmin), math.Max(b.xmax, o.xmax)
		u.ymin, u.ymax = math.Min(b.ymin, o.ymin), math.Max(b.ymax, o.ymax)
	}
	if u.hasZ {
		u.zmin, u.zmax = math.Min(b.zmin, o.zmin), math.Max(b.zmax, o.zmax)
	}
	if u.hasT {
		u.tmin, u.tmax = earliest(b.tmin, o.tmin), latest(b.tmax, o.tmax)
	}
	return u, nil
}

// Equal compares boxes field by field. A geodetic box with an implicit
// SRID is not equal to one carrying SRID=4326, since their text forms
// differ; use Overlaps or Contains for spatial comparison.
func (b STBox) Equal(o STBox) bool {
	if b.hasXY != o.hasXY || b.hasZ != o.hasZ || b.hasT != o.hasT || b.geodetic != o.geodetic || b.srid != o.srid {
		return false
	}
	if b.hasXY && (b.xmin != o.xmin || b.xmax != o.xmax || b.ymin != o.ymin || b.ymax != o.ymax) {
		return false
	}
	if b.hasZ && (b.zmin != o.zmin || b.zmax != o.zmax) {
		return false
	}
	if b.hasT && (!b.tmin.Equal(o.tmin) || !b.tmax.Equal(o.tmax)) {
		return false
	}
	return true
}

func (b STBox) keyword() string {
	if b.geodetic {
		if b.hasT {
			return "GEODSTBOX T"
		}
		return "GEODSTBOX"
	}
	switch {
	case b.hasZ && b.hasT:
		return "STBOX ZT"
	case b.hasZ:
		return "STBOX Z"
	case b.hasT:
		return "STBOX T"
	}
	return "STBOX"
}

// String renders the box, e.g. SRID=4326;GEODSTBOX T((x, y, z, t), (x, y, z, t)).
// A time-only box leaves the x and y slots blank: GEODSTBOX T((, , t), (, , t)).
func (b STBox) String() string {
	var s strings.Builder
	if b.srid != 0 {
		s.WriteString("SRID=")
		s.WriteString(strconv.Itoa(b.srid))
		s.WriteByte(';')
	}
	if b.IsEmpty() {
		if b.geodetic {
			s.WriteString("GEODSTBOX()")
		} else {
			s.WriteString("STBOX()")
		}
		return s.String()
	}
	s.WriteString(b.keyword())
	s.WriteByte('(')
	b.writeCorner(&s, b.xmin, b.ymin, b.zmin, b.tmin)
	s.WriteString(", ")
	b.writeCorner(&s, b.xmax, b.ymax, b.zmax, b.tmax)
	s.WriteByte(')')
	return s.String()
}

func (b STBox) writeCorner(s *strings.Builder, x, y, z float64, t time.Time) {
	var fields []string
	switch {
	case b.hasXY:
		fields = append(fields, temporal.FormatValue(x), temporal.FormatValue(y))
		if b.hasZ {
			fields = append(fields, temporal.FormatValue(z))
		}
	default:
		fields = append(fields, "", "")
	}
	if b.hasT {
		fields = append(fields, temporal.FormatTimestamp(t))
	}
	s.WriteByte('(')
	s.WriteString(strings.Join(fields, ", "))
	s.WriteByte(')')
}
