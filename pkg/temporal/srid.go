package temporal

import "github.com/robert-malhotra/go-tempo/pkg/geom"

// ResolveSRID reconciles an explicit SRID with the SRIDs observed on
// components. An unset (zero) side adopts the other; two set values that
// differ fail with a *SRIDConflictError.
func ResolveSRID(explicit int, observed ...int) (int, error) {
	return geom.ResolveSRID(explicit, observed...)
}

// resolveInstantsSRID resolves the SRID of instants against explicit and
// returns copies tagged with the result.
func resolveInstantsSRID[V Base](explicit int, instants []Instant[V]) (int, []Instant[V], error) {
	observed := make([]int, len(instants))
	for i, in := range instants {
		observed[i] = valueSRID(in.value)
	}
	srid, err := ResolveSRID(explicit, observed...)
	if err != nil {
		return 0, nil, err
	}
	out := make([]Instant[V], len(instants))
	for i, in := range instants {
		out[i] = Instant[V]{value: withValueSRID(in.value, srid), t: in.t}
	}
	return srid, out, nil
}
