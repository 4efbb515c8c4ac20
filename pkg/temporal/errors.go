package temporal

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
)

var (
	// ErrMalformedLiteral is matched by every *LiteralError.
	ErrMalformedLiteral = errors.New("temporal: malformed literal")
	// ErrInvalidInterpolation indicates an unknown interpolation token or
	// linear interpolation requested for a discrete base type.
	ErrInvalidInterpolation = errors.New("temporal: invalid interpolation")
	// ErrSRIDConflict indicates an explicit SRID that disagrees with an embedded one.
	ErrSRIDConflict = geom.ErrSRIDConflict
	// ErrEmptyDuration is returned for collections built without members.
	ErrEmptyDuration = errors.New("temporal: at least one member expected")
	// ErrNonMonotonicTime indicates timestamps that are not strictly increasing.
	ErrNonMonotonicTime = errors.New("temporal: timestamps must be strictly increasing")
	// ErrIncompatibleInterpolationSet indicates sequences with mixed interpolation.
	ErrIncompatibleInterpolationSet = errors.New("temporal: all sequences should have the same interpolation")
	// ErrDegenerateBounds indicates equal bounds with an exclusive side.
	ErrDegenerateBounds = errors.New("temporal: equal bounds must both be inclusive")
	// ErrInvalidBounds indicates a lower bound greater than the upper bound.
	ErrInvalidBounds = errors.New("temporal: lower bound greater than upper bound")
	// ErrOutOfRange is returned by N-th accessors past the last member.
	ErrOutOfRange = errors.New("temporal: index out of range")
	// ErrEmptyBox is returned when a box is built without any dimension.
	ErrEmptyBox = errors.New("temporal: box needs at least one dimension")
)

// SRIDConflictError names the given and the contained SRID.
type SRIDConflictError = geom.SRIDConflictError

// LiteralError describes a grammar violation.
type LiteralError struct {
	Expected string
	Found    string
	Pos      int
}

func (e *LiteralError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Found == "" {
		return fmt.Sprintf("temporal: malformed literal at offset %d: expected %s, found end of input", e.Pos, e.Expected)
	}
	return fmt.Sprintf("temporal: malformed literal at offset %d: expected %s, found %q", e.Pos, e.Expected, e.Found)
}

// Is lets errors.Is match ErrMalformedLiteral.
func (e *LiteralError) Is(target error) bool {
	return target == ErrMalformedLiteral
}

func outOfRange(n, size int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, size %d", n, size)
}
