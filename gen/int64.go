package gen

// Int64 generates signed 64-bit integers in [-2^62, 2^62-1]; sz is not
// consulted. Shrinking binary-searches
// toward target, the value in [lo, hi] closest to zero, halving the
// remaining distance at each step (invariant MONOTONIC SHRINK FOR
// INTEGERS: every child is strictly closer to target than its parent).
func Int64() Generator[int64] {
	return Int64Range(-1<<62, 1<<62-1)
}

// Int64Range generates signed 64-bit integers in [lo, hi] inclusive.
func Int64Range(lo, hi int64) Generator[int64] {
	target := clampTarget64(lo, hi)
	return From(func(r *RNG, sz Size) Shrinkable[int64] {
		v := drawInt64(r, lo, hi)
		return shrinkInt64Toward(v, target)
	})
}

func clampTarget64(lo, hi int64) int64 {
	switch {
	case lo > 0:
		return lo
	case hi < 0:
		return hi
	default:
		return 0
	}
}

func drawInt64(r *RNG, lo, hi int64) int64 {
	if r.Chance(BoundaryBias) {
		switch r.Intn(3) {
		case 0:
			return lo
		case 1:
			return hi
		default:
			return clampTarget64(lo, hi)
		}
	}
	return r.Int64Range(lo, hi)
}

// shrinkInt64Toward builds the binary-search shrink tree for v toward
// target. The first child is the midpoint of [target, v] (rounded toward
// target, so it is never v itself), carrying the
// rest of the bisection in its own subtree; the remaining siblings walk
// the midpoint back up toward v, one halving of the residual gap at a
// time, so a single level of children densely covers the interval and
// a greedy descent still lands on the exact boundary (spec.md §4.3: for
// v=8, target=0, that shape is 4, 6, 7, with 2, 3 below 4 and so on).
func shrinkInt64Toward(v, target int64) Shrinkable[int64] {
	return NewShrinkable(v, func() LazyStream[Shrinkable[int64]] {
		if v == target {
			return EmptyStream[Shrinkable[int64]]()
		}
		mid := target + (v-target)/2
		return Cons(shrinkInt64Toward(mid, target), func() LazyStream[Shrinkable[int64]] {
			return int64SiblingsToward(mid, v, target)
		})
	})
}

// int64SiblingsToward produces the chain of points between lo and hi
// (exclusive of both), each one the midpoint of the remaining gap to
// hi, approaching hi from lo. These are siblings of lo at hi's shrink
// level: values closer to the original hi than lo is, tried only after
// lo itself failed to reproduce the failure.
func int64SiblingsToward(lo, hi, target int64) LazyStream[Shrinkable[int64]] {
	if hi-lo <= 1 && lo-hi <= 1 {
		return EmptyStream[Shrinkable[int64]]()
	}
	mid := midpoint64(lo, hi)
	if mid == lo {
		return EmptyStream[Shrinkable[int64]]()
	}
	return Cons(shrinkInt64Toward(mid, target), func() LazyStream[Shrinkable[int64]] {
		return int64SiblingsToward(mid, hi, target)
	})
}

// midpoint64 returns floor((a+b)/2) using an arithmetic shift so it
// rounds toward negative infinity for mixed-sign sums, matching the
// floor division spec.md §4.3 specifies for the binary search.
func midpoint64(a, b int64) int64 {
	return a + ((b - a) >> 1)
}
