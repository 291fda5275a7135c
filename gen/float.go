package gen

import "math"

// Float32 generates float32 values by drawing a float64 and narrowing,
// including occasional NaN and infinities.
func Float32() Generator[float32] {
	return MapShrinkableGen(Float64(), func(v float64) float32 { return float32(v) }, func(v float32) float64 { return float64(v) })
}

// Float32Range generates finite float32 values in [lo, hi].
func Float32Range(lo, hi float32) Generator[float32] {
	return MapShrinkableGen(Float64Range(float64(lo), float64(hi)), func(v float64) float32 { return float32(v) }, func(v float32) float64 { return float64(v) })
}

// IsSpecial reports whether v is NaN or infinite.
func IsSpecial(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
