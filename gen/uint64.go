package gen

// Uint64 generates unsigned 64-bit integers across a wide default
// range.
func Uint64() Generator[uint64] {
	return Uint64Range(0, 1<<62)
}

// Uint64Range generates uint64 values in [lo, hi] inclusive, shrinking
// toward lo by the same binary-search policy as the signed integers.
func Uint64Range(lo, hi uint64) Generator[uint64] {
	target := lo
	return From(func(r *RNG, sz Size) Shrinkable[uint64] {
		v := drawUint64(r, lo, hi)
		return shrinkUint64Toward(v, target)
	})
}

func drawUint64(r *RNG, lo, hi uint64) uint64 {
	if r.Chance(BoundaryBias) {
		switch r.Intn(3) {
		case 0:
			return lo
		case 1:
			return hi
		default:
			return lo
		}
	}
	return r.Uint64Range(lo, hi)
}

// shrinkUint64Toward mirrors shrinkInt64Toward's recursive bisection:
// the first child is the midpoint of [target, v], and its siblings walk
// that midpoint back up toward v one halving at a time, so a single
// level of children densely covers the interval for a greedy descent.
func shrinkUint64Toward(v, target uint64) Shrinkable[uint64] {
	return NewShrinkable(v, func() LazyStream[Shrinkable[uint64]] {
		if v == target {
			return EmptyStream[Shrinkable[uint64]]()
		}
		mid := target + (v-target)/2
		return Cons(shrinkUint64Toward(mid, target), func() LazyStream[Shrinkable[uint64]] {
			return uint64SiblingsToward(mid, v, target)
		})
	})
}

func uint64SiblingsToward(lo, hi, target uint64) LazyStream[Shrinkable[uint64]] {
	if hi-lo <= 1 {
		return EmptyStream[Shrinkable[uint64]]()
	}
	mid := lo + (hi-lo)/2
	if mid == lo {
		return EmptyStream[Shrinkable[uint64]]()
	}
	return Cons(shrinkUint64Toward(mid, target), func() LazyStream[Shrinkable[uint64]] {
		return uint64SiblingsToward(mid, hi, target)
	})
}
