package gen

import "math"

// Float64 generates float64 values, including occasionally NaN and the
// two infinities, weighted low relative to ordinary finite draws.
func Float64() Generator[float64] {
	return From(func(r *RNG, sz Size) Shrinkable[float64] {
		if r.Chance(0.02) {
			switch r.Intn(3) {
			case 0:
				return shrinkFloat64(math.NaN())
			case 1:
				return shrinkFloat64(math.Inf(1))
			default:
				return shrinkFloat64(math.Inf(-1))
			}
		}
		mag := math.Exp2(float64(r.IntRange(-20, 20)))
		v := (r.Float64()*2 - 1) * mag
		return shrinkFloat64(v)
	})
}

// Float64Range generates finite float64 values in [lo, hi].
func Float64Range(lo, hi float64) Generator[float64] {
	return From(func(r *RNG, sz Size) Shrinkable[float64] {
		v := lo + r.Float64()*(hi-lo)
		return shrinkFloat64Toward(v, clampFloatTarget(lo, hi))
	})
}

func clampFloatTarget(lo, hi float64) float64 {
	switch {
	case lo > 0:
		return lo
	case hi < 0:
		return hi
	default:
		return 0
	}
}

// shrinkFloat64 is the unconstrained shrink: special values collapse
// toward zero; ordinary values follow the four-step strategy of
// shrinkFloat64Toward with target 0.
func shrinkFloat64(v float64) Shrinkable[float64] {
	if math.IsNaN(v) {
		return NewShrinkable(v, func() LazyStream[Shrinkable[float64]] {
			return One(Terminal(0.0))
		})
	}
	if math.IsInf(v, 0) {
		return NewShrinkable(v, func() LazyStream[Shrinkable[float64]] {
			return One(shrinkFloat64Toward(math.MaxFloat64*math.Copysign(1, v), 0))
		})
	}
	return shrinkFloat64Toward(v, 0)
}

// shrinkFloat64Toward implements the four-step strategy: try target
// outright; if v is negative, try -v; clear low mantissa bits of the
// Frexp fraction (simplify the fraction); then halve the distance to
// target arithmetically, target + (v-target)/2. Each step only appears
// if it actually changes the value.
func shrinkFloat64Toward(v, target float64) Shrinkable[float64] {
	return NewShrinkable(v, func() LazyStream[Shrinkable[float64]] {
		if v == target {
			return EmptyStream[Shrinkable[float64]]()
		}
		var candidates []float64
		seen := map[float64]bool{v: true}
		add := func(c float64) {
			if !seen[c] && !math.IsNaN(c) {
				seen[c] = true
				candidates = append(candidates, c)
			}
		}

		add(target)

		if v < 0 {
			add(-v)
		}

		frac, exp := math.Frexp(v)
		simplified := math.Ldexp(math.Trunc(frac*256) / 256, exp)
		add(simplified)

		half := target + (v-target)/2
		add(half)

		var out LazyStream[Shrinkable[float64]] = EmptyStream[Shrinkable[float64]]()
		for i := len(candidates) - 1; i >= 0; i-- {
			c := candidates[i]
			child := shrinkFloat64Toward(c, target)
			tail := out
			out = Cons(child, func() LazyStream[Shrinkable[float64]] { return tail })
		}
		return out
	})
}
