package gen

// Uint generates platform-width unsigned integers across a wide
// default range.
func Uint() Generator[uint] {
	return UintRange(0, (1<<31)-1)
}

// UintRange generates uints in [lo, hi] inclusive.
func UintRange(lo, hi uint) Generator[uint] {
	return MapShrinkableGen(Uint64Range(uint64(lo), uint64(hi)), func(v uint64) uint { return uint(v) }, func(v uint) uint64 { return uint64(v) })
}
