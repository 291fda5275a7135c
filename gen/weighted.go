package gen

// WeightedValue pairs a literal value with a selection weight in
// [0,1]. Used by ElementOf.
type WeightedValue[T any] struct {
	Value  T
	Weight float64
}

// WeightedGen pairs a generator with a selection weight in [0,1]. Used
// by OneOf.
type WeightedGen[T any] struct {
	Gen    Generator[T]
	Weight float64
}

// resolvedWeights applies spec.md §4.5's weight policy: sum the
// explicitly assigned weights (entries with Weight > 0); whatever
// remains of 1.0 is split evenly across the unweighted entries
// (Weight == 0). Weights need not sum to 1 — the remainder may be
// negative, in which case unweighted entries get 0 — but the assigned
// weights themselves must each be non-negative.
func resolvedWeights(weights []float64) []float64 {
	n := len(weights)
	out := make([]float64, n)
	assigned := 0.0
	unassignedCount := 0
	for i, w := range weights {
		if w > 0 {
			out[i] = w
			assigned += w
		} else {
			unassignedCount++
		}
	}
	if unassignedCount > 0 {
		remainder := 1.0 - assigned
		if remainder < 0 {
			remainder = 0
		}
		share := remainder / float64(unassignedCount)
		for i, w := range weights {
			if w <= 0 {
				out[i] = share
			}
		}
	}
	return out
}

// pickWeighted draws an index in [0,n) according to resolved weights,
// falling back to uniform selection if every weight is zero.
func pickWeighted(r *RNG, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}
	target := r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
