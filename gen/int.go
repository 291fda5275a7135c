package gen

// Int generates platform-width signed integers across a wide default
// range.
func Int() Generator[int] {
	return IntRange(-(1 << 30), (1<<30)-1)
}

// IntRange generates ints in [lo, hi] inclusive, shrinking by the same
// binary-search-toward-target policy as Int64Range.
func IntRange(lo, hi int) Generator[int] {
	return MapShrinkableGen(Int64Range(int64(lo), int64(hi)), func(v int64) int { return int(v) }, func(v int) int64 { return int64(v) })
}

// MapShrinkableGen adapts a Generator[T] to Generator[U] via a pair of
// inverse transforms, preserving the source tree's shrink shape. It is
// the building block every narrowing wrapper (IntRange, UintRange, ...)
// is defined in terms of.
func MapShrinkableGen[T, U any](g Generator[T], to func(T) U, from func(U) T) Generator[U] {
	_ = from
	return From(func(r *RNG, sz Size) Shrinkable[U] {
		return MapShrinkable(g.Generate(r, sz), to)
	})
}
