// Package geom provides the point geometry carried by temporal values.
//
// Points are small comparable values. Text and binary encodings are
// delegated to github.com/twpayne/go-geom.
package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultGeodeticSRID is assumed for geodetic values that carry no SRID.
const DefaultGeodeticSRID = 4326

var (
	// ErrSRIDConflict is matched by every *SRIDConflictError.
	ErrSRIDConflict = errors.New("geom: conflicting SRIDs")
	// ErrUnsupportedGeometry is returned when decoded input is not a non-empty XY or XYZ point.
	ErrUnsupportedGeometry = errors.New("geom: unsupported geometry")
)

// SRIDConflictError reports two spatial reference ids that cannot be reconciled.
type SRIDConflictError struct {
	Given     int
	Contained int
}

func (e *SRIDConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("geom: conflicting SRIDs provided. Given: %d, while geometry contains: %d", e.Given, e.Contained)
}

// Is lets errors.Is match ErrSRIDConflict.
func (e *SRIDConflictError) Is(target error) bool {
	return target == ErrSRIDConflict
}

// ResolveSRID reconciles an explicit SRID with the SRIDs observed on
// component values. Zero means unset and never conflicts.
func ResolveSRID(explicit int, observed ...int) (int, error) {
	resolved := explicit
	for _, srid := range observed {
		switch {
		case srid == 0:
		case resolved == 0:
			resolved = srid
		case srid != resolved:
			return 0, &SRIDConflictError{Given: resolved, Contained: srid}
		}
	}
	return resolved, nil
}

// Point is an immutable 2D or 3D point with an optional SRID.
type Point struct {
	x, y, z float64
	hasZ    bool
	srid    int
}

// MakePoint returns a 2D point.
func MakePoint(x, y float64) Point {
	return Point{x: x, y: y}
}

// MakePointZ returns a 3D point.
func MakePointZ(x, y, z float64) Point {
	return Point{x: x, y: y, z: z, hasZ: true}
}

func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }
func (p Point) Z() float64 { return p.z }
func (p Point) HasZ() bool { return p.hasZ }
func (p Point) SRID() int { return p.srid }

// WithSRID returns a copy of p tagged with srid.
func (p Point) WithSRID(srid int) Point {
	p.srid = srid
	return p
}

// Layout reports the go-geom layout of p.
func (p Point) Layout() gogeom.Layout {
	if p.hasZ {
		return gogeom.XYZ
	}
	return gogeom.XY
}

// Geom converts p to a go-geom point.
func (p Point) Geom() *gogeom.Point {
	coords := []float64{p.x, p.y}
	if p.hasZ {
		coords = append(coords, p.z)
	}
	return gogeom.NewPointFlat(p.Layout(), coords).SetSRID(p.srid)
}

// String renders p as EWKT, prefixing the SRID when set.
func (p Point) String() string {
	if p.srid != 0 {
		return "SRID=" + strconv.Itoa(p.srid) + ";" + ToWKT(p)
	}
	return ToWKT(p)
}

// FromGeom converts a decoded go-geom value into a Point.
func FromGeom(g gogeom.T) (Point, error) {
	pt, ok := g.(*gogeom.Point)
	if !ok || pt == nil {
		return Point{}, errors.Wrapf(ErrUnsupportedGeometry, "got %T", g)
	}
	if pt.Empty() {
		return Point{}, errors.Wrap(ErrUnsupportedGeometry, "empty point")
	}
	var p Point
	switch pt.Layout() {
	case gogeom.XY:
		p = MakePoint(pt.X(), pt.Y())
	case gogeom.XYZ:
		p = MakePointZ(pt.X(), pt.Y(), pt.Z())
	default:
		return Point{}, errors.Wrapf(ErrUnsupportedGeometry, "layout %s", pt.Layout())
	}
	return p.WithSRID(pt.SRID()), nil
}

// Compare orders points by x, y, z, dimensionality and SRID.
func Compare(a, b Point) int {
	if c := compareFloat(a.x, b.x); c != 0 {
		return c
	}
	if c := compareFloat(a.y, b.y); c != 0 {
		return c
	}
	if c := compareFloat(a.z, b.z); c != 0 {
		return c
	}
	if a.hasZ != b.hasZ {
		if a.hasZ {
			return 1
		}
		return -1
	}
	return a.srid - b.srid
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ToWKT renders p as well-known text without its SRID, e.g. "POINT (1 2)".
func ToWKT(p Point) string {
	s, err := wkt.Marshal(p.Geom())
	if err != nil {
		// Only reachable for layouts Point never produces.
		return fmt.Sprintf("POINT (%v %v)", p.x, p.y)
	}
	return s
}

// ParseWKT parses WKT or EWKT ("SRID=n;POINT(...)"). The embedded SRID
// and srid are reconciled with ResolveSRID.
func ParseWKT(s string, srid int) (Point, error) {
	embedded, body, err := splitSRID(s)
	if err != nil {
		return Point{}, err
	}
	g, err := wkt.Unmarshal(strings.TrimSpace(body))
	if err != nil {
		return Point{}, errors.Wrapf(err, "geom: parse %q", s)
	}
	p, err := FromGeom(g)
	if err != nil {
		return Point{}, err
	}
	resolved, err := ResolveSRID(srid, embedded)
	if err != nil {
		return Point{}, err
	}
	return p.WithSRID(resolved), nil
}

// ParseHexEWKB decodes a hex encoded (E)WKB point.
func ParseHexEWKB(s string) (Point, error) {
	g, err := ewkbhex.Decode(strings.TrimSpace(s))
	if err != nil {
		return Point{}, errors.Wrapf(err, "geom: decode hex ewkb %q", s)
	}
	return FromGeom(g)
}

// ToHexEWKB encodes p as little-endian hex EWKB.
func ToHexEWKB(p Point) (string, error) {
	s, err := ewkbhex.Encode(p.Geom(), ewkbhex.NDR)
	if err != nil {
		return "", errors.Wrap(err, "geom: encode hex ewkb")
	}
	return s, nil
}

// ToGeoJSON encodes p as a GeoJSON geometry.
func ToGeoJSON(p Point) ([]byte, error) {
	b, err := geojson.Marshal(p.Geom())
	if err != nil {
		return nil, errors.Wrap(err, "geom: encode geojson")
	}
	return b, nil
}

// Track joins points into a single geometry: a point for one element,
// a line string otherwise. All points must share dimensionality.
func Track(points []Point) (gogeom.T, error) {
	if len(points) == 0 {
		return nil, errors.Wrap(ErrUnsupportedGeometry, "empty track")
	}
	layout := points[0].Layout()
	srids := make([]int, 0, len(points))
	flat := make([]float64, 0, len(points)*layout.Stride())
	for _, p := range points {
		if p.Layout() != layout {
			return nil, errors.Wrap(ErrUnsupportedGeometry, "mixed dimensionality")
		}
		flat = append(flat, p.Geom().FlatCoords()...)
		srids = append(srids, p.srid)
	}
	srid, err := ResolveSRID(0, srids...)
	if err != nil {
		return nil, err
	}
	if len(points) == 1 {
		return points[0].Geom().SetSRID(srid), nil
	}
	return gogeom.NewLineStringFlat(layout, flat).SetSRID(srid), nil
}

// Bounds returns the go-geom extent of points, or nil when empty.
func Bounds(points []Point) *gogeom.Bounds {
	if len(points) == 0 {
		return nil
	}
	b := gogeom.NewBounds(points[0].Layout())
	for _, p := range points {
		b.Extend(p.Geom())
	}
	return b
}

func splitSRID(s string) (int, string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 5 || !strings.EqualFold(s[:5], "SRID=") {
		return 0, s, nil
	}
	end := strings.IndexByte(s, ';')
	if end < 0 {
		return 0, "", errors.Errorf("geom: missing ';' after SRID in %q", s)
	}
	srid, err := strconv.Atoi(strings.TrimSpace(s[5:end]))
	if err != nil {
		return 0, "", errors.Wrapf(err, "geom: invalid SRID in %q", s)
	}
	return srid, s[end+1:], nil
}
