// Package sampler draws weighted random choices where "no change" is an
// unlabeled weight segment trailing the explicit options.
package sampler

import (
	"math/rand/v2"
	"sort"
)

// Option pairs a selectable key with its non-negative weight.
type Option[K any] struct {
	Key    K
	Weight float64
}

// Sample picks one option with probability proportional to its weight. The
// implicit weight forms a final segment that maps to "nothing selected". The
// boolean result is false when the implicit segment is drawn or when the total
// weight is zero; in the latter case no random number is consumed.
func Sample[K any](rng *rand.Rand, opts []Option[K], implicit float64) (K, bool) {
	var zero K
	if implicit < 0 {
		implicit = 0
	}

	bounds := make([]float64, len(opts))
	total := 0.0
	for i, o := range opts {
		if o.Weight > 0 {
			total += o.Weight
		}
		bounds[i] = total
	}
	total += implicit
	if total <= 0 {
		return zero, false
	}

	r := rng.Float64() * total
	// First boundary strictly greater than r; a value equal to a boundary
	// belongs to the following segment.
	i := sort.Search(len(bounds), func(i int) bool { return bounds[i] > r })
	if i == len(bounds) {
		if implicit > 0 {
			return zero, false
		}
		// r rounded up to a subnormal total; the draw still belongs to the
		// last option that carries weight.
		for j := len(opts) - 1; j >= 0; j-- {
			if opts[j].Weight > 0 {
				return opts[j].Key, true
			}
		}
		return zero, false
	}
	return opts[i].Key, true
}

// Chance reports whether a single weighted outcome wins against an implicit
// "nothing happens" weight.
func Chance(rng *rand.Rand, weight, implicit float64) bool {
	_, ok := Sample(rng, []Option[struct{}]{{Weight: weight}}, implicit)
	return ok
}
