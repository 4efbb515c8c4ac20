package temporal

// Option configures temporal value construction.
type Option func(*options)

type options struct {
	interp Interpolation
	srid   int
}

// WithInterpolation requests an interpolation for sequences and sequence sets.
// Instants and instant sets ignore it.
func WithInterpolation(i Interpolation) Option {
	return func(o *options) {
		o.interp = i
	}
}

// WithSRID sets an explicit SRID, reconciled against embedded geometry SRIDs.
func WithSRID(srid int) Option {
	return func(o *options) {
		o.srid = srid
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) list() []Option {
	return []Option{WithInterpolation(o.interp), WithSRID(o.srid)}
}
