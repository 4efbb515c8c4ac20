package temporal

import (
	"strings"

	"github.com/pkg/errors"
)

// Interpolation describes how a sequence behaves between its instants.
type Interpolation int

const (
	// Stepwise holds the last value until the next instant.
	Stepwise Interpolation = iota + 1
	// Linear interpolates continuously between instants.
	Linear
)

func (i Interpolation) String() string {
	switch i {
	case Stepwise:
		return "Stepwise"
	case Linear:
		return "Linear"
	}
	return "Unknown"
}

// ParseInterpolation accepts "Stepwise" or "Linear" in any case.
func ParseInterpolation(s string) (Interpolation, error) {
	switch {
	case strings.EqualFold(s, "Stepwise"):
		return Stepwise, nil
	case strings.EqualFold(s, "Linear"):
		return Linear, nil
	}
	return 0, errors.Wrapf(ErrInvalidInterpolation, "unknown interpolation %q", s)
}

// DefaultInterpolation is Linear for continuous kinds and Stepwise otherwise.
func DefaultInterpolation(k Kind) Interpolation {
	if k.IsContinuous() {
		return Linear
	}
	return Stepwise
}

// resolveInterpolation applies the default for an unset request and
// rejects Linear for discrete kinds.
func resolveInterpolation(k Kind, requested Interpolation) (Interpolation, error) {
	switch requested {
	case 0:
		return DefaultInterpolation(k), nil
	case Stepwise:
		return Stepwise, nil
	case Linear:
		if !k.IsContinuous() {
			return 0, errors.Wrapf(ErrInvalidInterpolation, "linear interpolation is not supported for %s", k)
		}
		return Linear, nil
	}
	return 0, errors.Wrapf(ErrInvalidInterpolation, "interpolation %d", int(requested))
}
